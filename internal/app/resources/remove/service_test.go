package remove

import (
	"context"
	"errors"
	"testing"

	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/resource"
)

type fakeServer struct {
	listResults []resource.Value
	deleted     []string
	deleteErr   error
}

func (f *fakeServer) List(ctx context.Context, path string, query map[string]string) ([]resource.Value, error) {
	return f.listResults, nil
}

func (f *fakeServer) Get(ctx context.Context, path string) (resource.Value, error) {
	return nil, nil
}

func (f *fakeServer) Create(ctx context.Context, path string, body resource.Value) (resource.Value, error) {
	return nil, nil
}

func (f *fakeServer) Update(ctx context.Context, path string, body resource.Value) (resource.Value, error) {
	return nil, nil
}

func (f *fakeServer) Patch(ctx context.Context, path string, body resource.Value) (resource.Value, error) {
	return nil, nil
}

func (f *fakeServer) Delete(ctx context.Context, path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func productList() []resource.Value {
	return []resource.Value{
		map[string]any{"id": "1", "name": "Milanesa"},
		map[string]any{"id": "2", "name": "Empanada"},
	}
}

func TestExecutePreConfirmedDeletes(t *testing.T) {
	t.Parallel()

	srv := &fakeServer{listResults: productList()}
	result, err := Execute(context.Background(), Dependencies{Server: srv}, Request{
		ResourceType: "product",
		ID:           "2",
		PreConfirmed: true,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Canceled {
		t.Fatal("expected deletion, not cancellation")
	}
	if result.Label != "Empanada" {
		t.Fatalf("unexpected label: %q", result.Label)
	}
	if len(srv.deleted) != 1 || srv.deleted[0] != "/products/2" {
		t.Fatalf("unexpected delete calls: %v", srv.deleted)
	}
}

func TestExecutePromptDeclinedCancels(t *testing.T) {
	t.Parallel()

	srv := &fakeServer{listResults: productList()}
	result, err := Execute(context.Background(), Dependencies{Server: srv}, Request{
		ResourceType: "product",
		ID:           "1",
		Confirm: func(label string) (bool, error) {
			if label != "Milanesa" {
				t.Fatalf("unexpected confirmation label: %q", label)
			}
			return false, nil
		},
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Canceled {
		t.Fatal("expected cancellation")
	}
	if len(srv.deleted) != 0 {
		t.Fatalf("declined confirmation must not delete, got %v", srv.deleted)
	}
}

func TestExecuteWithoutConfirmationFails(t *testing.T) {
	t.Parallel()

	srv := &fakeServer{listResults: productList()}
	_, err := Execute(context.Background(), Dependencies{Server: srv}, Request{
		ResourceType: "product",
		ID:           "1",
	})
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(srv.deleted) != 0 {
		t.Fatalf("unconfirmed request must not delete, got %v", srv.deleted)
	}
}

func TestExecuteUnknownIDIsNotFound(t *testing.T) {
	t.Parallel()

	srv := &fakeServer{listResults: productList()}
	_, err := Execute(context.Background(), Dependencies{Server: srv}, Request{
		ResourceType: "product",
		ID:           "99",
		PreConfirmed: true,
	})
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestExecuteNonDeletableType(t *testing.T) {
	t.Parallel()

	srv := &fakeServer{listResults: productList()}
	_, err := Execute(context.Background(), Dependencies{Server: srv}, Request{
		ResourceType: "order",
		ID:           "1",
		PreConfirmed: true,
	})
	if !faults.IsCategory(err, faults.PreconditionError) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestExecuteDeleteFailurePropagates(t *testing.T) {
	t.Parallel()

	srv := &fakeServer{
		listResults: productList(),
		deleteErr:   faults.NewTypedError(faults.ServerError, "boom", errors.New("500")),
	}
	_, err := Execute(context.Background(), Dependencies{Server: srv}, Request{
		ResourceType: "product",
		ID:           "1",
		PreConfirmed: true,
	})
	if !faults.IsCategory(err, faults.ServerError) {
		t.Fatalf("expected server error, got %v", err)
	}
}
