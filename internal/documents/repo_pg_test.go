package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func documentRows(doc Document) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "bucket_path", "status", "metadata", "created_at", "updated_at",
	}).AddRow(
		doc.ID, doc.UserID, doc.FileName, doc.BucketPath, string(doc.Status), []byte(`{}`), doc.CreatedAt, doc.UpdatedAt,
	)
}

func TestPGRepoCreateReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	doc := Document{
		ID:         "doc-1",
		UserID:     "user-1",
		FileName:   "report.pdf",
		BucketPath: "user-1/doc-1_report.pdf",
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.UserID, doc.FileName, doc.BucketPath, string(StatusPending), sqlmock.AnyArg()).
		WillReturnRows(documentRows(doc))

	got, err := repo.Create(context.Background(), doc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != doc.ID || got.Status != StatusPending {
		t.Fatalf("unexpected row back: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "file_name", "bucket_path", "status", "metadata", "created_at", "updated_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want %v", err, ErrNotFound)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUserSeparateCount(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	doc := Document{
		ID: "doc-1", UserID: "user-1", FileName: "a.pdf",
		BucketPath: "user-1/doc-1_a.pdf", Status: StatusPending,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("user-1", 10, 0).
		WillReturnRows(documentRows(doc))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	docs, total, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 row in window, got %d", len(docs))
	}
	if total != 42 {
		t.Fatalf("expected total from count query, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteReportsRowsAffected(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc-2", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), "doc-1", "user-1")
	if err != nil || !removed {
		t.Fatalf("expected removed=true, got %v err=%v", removed, err)
	}
	removed, err = repo.Delete(context.Background(), "doc-2", "user-1")
	if err != nil || removed {
		t.Fatalf("expected removed=false, got %v err=%v", removed, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusWithErrorReplacesMetadata(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WithArgs(string(StatusFailed), []byte(`{"error":"parse failed"}`), "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateStatus(context.Background(), "doc-1", StatusFailed, "parse failed")
	if err != nil || !updated {
		t.Fatalf("expected updated=true, got %v err=%v", updated, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusWithoutErrorKeepsMetadata(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WithArgs(string(StatusCompleted), "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateStatus(context.Background(), "doc-1", StatusCompleted, "")
	if err != nil || !updated {
		t.Fatalf("expected updated=true, got %v err=%v", updated, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
