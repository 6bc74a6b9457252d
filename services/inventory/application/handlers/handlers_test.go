package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	invdomain "github.com/ghuser/fieldops/services/inventory/domain"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
)

// stubRepo embeds the repository interface so each test overrides only the
// methods its endpoint touches.
type stubRepo struct {
	repositories.ItemRepository

	addInstances func(ctx context.Context, itemID uuid.UUID, instances []*models.Instance, reason, actor string) error
	getItem      func(ctx context.Context, id uuid.UUID) (*models.Item, error)
	deleteInst   func(ctx context.Context, itemID uuid.UUID, uniqueID string) error
}

func (s *stubRepo) AddInstances(ctx context.Context, itemID uuid.UUID, instances []*models.Instance, reason, actor string) error {
	return s.addInstances(ctx, itemID, instances, reason, actor)
}

func (s *stubRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.getItem(ctx, id)
}

func (s *stubRepo) DeleteInstance(ctx context.Context, itemID uuid.UUID, uniqueID string) error {
	return s.deleteInst(ctx, itemID, uniqueID)
}

func servicesWith(repo repositories.ItemRepository) *appsvcs.Services {
	return &appsvcs.Services{Inventory: appsvcs.NewInventoryService(repo)}
}

func TestPostInstancesHandler(t *testing.T) {
	itemID := uuid.New()

	t.Run("registers batch and returns 201", func(t *testing.T) {
		var gotReason string
		repo := &stubRepo{
			addInstances: func(_ context.Context, id uuid.UUID, instances []*models.Instance, reason, _ string) error {
				if id != itemID {
					t.Errorf("expected item %s, got %s", itemID, id)
				}
				if len(instances) != 2 {
					t.Errorf("expected 2 instances, got %d", len(instances))
				}
				gotReason = reason
				return nil
			},
		}
		h := NewPostInstancesHandler(servicesWith(repo))

		body := `{"inventory_id":"` + itemID.String() + `","instances":[{"unique_id":"SN001"},{"unique_id":"SN002"}]}`
		r := httptest.NewRequest(http.MethodPost, "/inventory/instances", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if gotReason == "" {
			t.Fatal("expected a movement reason to be passed through")
		}

		var resp AddInstancesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Instances) != 2 || resp.Instances[0].Status != string(models.StatusInStock) {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("duplicate maps to 409", func(t *testing.T) {
		repo := &stubRepo{
			addInstances: func(context.Context, uuid.UUID, []*models.Instance, string, string) error {
				return invdomain.ErrDuplicateInstance
			},
		}
		h := NewPostInstancesHandler(servicesWith(repo))

		body := `{"inventory_id":"` + itemID.String() + `","instances":[{"unique_id":"SN001"}]}`
		r := httptest.NewRequest(http.MethodPost, "/inventory/instances", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("empty instances list fails validation", func(t *testing.T) {
		h := NewPostInstancesHandler(servicesWith(&stubRepo{}))

		body := `{"inventory_id":"` + itemID.String() + `","instances":[]}`
		r := httptest.NewRequest(http.MethodPost, "/inventory/instances", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		h := NewPostInstancesHandler(servicesWith(&stubRepo{}))

		r := httptest.NewRequest(http.MethodPost, "/inventory/instances", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestGetItemHandler(t *testing.T) {
	t.Run("returns item", func(t *testing.T) {
		code, _ := models.NewItemCode("EQ-01")
		item, _ := models.NewItem(code, "ONT router", "unidades", models.TypeEquipment, 2)
		repo := &stubRepo{
			getItem: func(_ context.Context, id uuid.UUID) (*models.Item, error) {
				if id != item.ID {
					t.Errorf("expected id %s, got %s", item.ID, id)
				}
				return item, nil
			},
		}
		h := NewGetItemHandler(servicesWith(repo))

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/inventory/items/"+item.ID.String(), nil), "id", item.ID.String())
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp ItemResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Code != "EQ-01" || resp.Type != "equipment" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("unknown item maps to 404", func(t *testing.T) {
		repo := &stubRepo{
			getItem: func(context.Context, uuid.UUID) (*models.Item, error) {
				return nil, invdomain.ErrItemNotFound
			},
		}
		h := NewGetItemHandler(servicesWith(repo))

		id := uuid.NewString()
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/inventory/items/"+id, nil), "id", id)
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid uuid is a 400", func(t *testing.T) {
		h := NewGetItemHandler(servicesWith(&stubRepo{}))

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/inventory/items/nope", nil), "id", "nope")
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestDeleteInstanceHandler(t *testing.T) {
	itemID := uuid.New()

	t.Run("deletes and returns 204", func(t *testing.T) {
		repo := &stubRepo{
			deleteInst: func(_ context.Context, id uuid.UUID, uniqueID string) error {
				if id != itemID || uniqueID != "SN001" {
					t.Errorf("unexpected args: %s %s", id, uniqueID)
				}
				return nil
			},
		}
		h := NewDeleteInstanceHandler(servicesWith(repo))

		r := httptest.NewRequest(http.MethodDelete, "/inventory/instances?inventory_id="+itemID.String()+"&unique_id=SN001", nil)
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("history maps to 400", func(t *testing.T) {
		repo := &stubRepo{
			deleteInst: func(context.Context, uuid.UUID, string) error {
				return invdomain.ErrInstanceNotDeletable
			},
		}
		h := NewDeleteInstanceHandler(servicesWith(repo))

		r := httptest.NewRequest(http.MethodDelete, "/inventory/instances?inventory_id="+itemID.String()+"&unique_id=SN001", nil)
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing unique_id is a 400", func(t *testing.T) {
		h := NewDeleteInstanceHandler(servicesWith(&stubRepo{}))

		r := httptest.NewRequest(http.MethodDelete, "/inventory/instances?inventory_id="+itemID.String(), nil)
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPostMovementsHandler_Validation(t *testing.T) {
	t.Run("unknown action fails validation", func(t *testing.T) {
		h := NewPostMovementsHandler(servicesWith(&stubRepo{}))

		body := `{"action":"teleport","data":{}}`
		r := httptest.NewRequest(http.MethodPost, "/inventory/movements", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("restock with empty items fails validation", func(t *testing.T) {
		h := NewPostMovementsHandler(servicesWith(&stubRepo{}))

		body := `{"action":"restock","data":{"items":[]}}`
		r := httptest.NewRequest(http.MethodPost, "/inventory/movements", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Execute(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

// withURLParam injects a chi route parameter the way the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
