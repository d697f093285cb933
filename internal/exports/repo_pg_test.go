package exports

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateInsertsAllColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	export := CVExport{
		ID:         "export-1",
		UserID:     "user-1",
		SubjectID:  "subject-1",
		Template:   "academic",
		Format:     "word",
		FileName:   "CV_Jane_Doe_academic_2026-08-30.docx",
		StorageKey: "exports/user-1/export-1.docx",
		MimeType:   "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		SizeBytes:  12345,
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO cv_exports").
		WithArgs(
			export.ID,
			export.UserID,
			export.SubjectID,
			export.Template,
			export.Format,
			export.FileName,
			export.StorageKey,
			export.MimeType,
			export.SizeBytes,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), export); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDEnforcesOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "subject_id", "template", "format",
		"file_name", "storage_key", "mime_type", "size_bytes", "created_at",
	}).AddRow("export-1", "owner-1", "subject-1", "classic", "print",
		"CV_Jane_Doe_classic_2026-08-30.html", "exports/owner-1/export-1.html",
		"text/html", int64(900), created)

	mock.ExpectQuery("SELECT (.+) FROM cv_exports").
		WithArgs("export-1").
		WillReturnRows(rows)

	if _, err := repo.GetByID(context.Background(), "someone-else", "export-1"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		export := CVExport{
			ID:        "export-" + string(rune('a'+i)),
			UserID:    "user-1",
			SubjectID: "subject-1",
			Template:  "modern",
			Format:    "word",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), export); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.ListByUser(context.Background(), "user-1", 2, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(list))
	}
	if list[0].ID != "export-c" || list[1].ID != "export-b" {
		t.Fatalf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}

	if _, err := repo.GetByID(context.Background(), "user-2", "export-a"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
