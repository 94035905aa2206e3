package controllers

import "testing"

func TestResolveCourseIDPassthrough(t *testing.T) {
	// A caller-supplied id is returned unchanged without touching the store.
	resolved, err := ResolveCourseID(nil, 42, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Valid || resolved.Int64 != 42 {
		t.Fatalf("expected id 42 back, got %+v", resolved)
	}
}

func TestResolveCourseIDNoCourse(t *testing.T) {
	resolved, err := ResolveCourseID(nil, 0, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Valid {
		t.Fatalf("expected null course id, got %+v", resolved)
	}
}

func TestResolveCourseIDRequiresUniversity(t *testing.T) {
	if _, err := ResolveCourseID(nil, 0, "Linear Algebra", 0); err == nil {
		t.Fatal("expected a validation error without university_id")
	}
}

func TestResolveCourseIDReusesExactNameMatch(t *testing.T) {
	db := testDB(t)

	uniID := seedUniversity(t, db, "Test University", "test-university")
	existing := seedCourse(t, db, "Linear Algebra", uniID)

	resolved, err := ResolveCourseID(db, 0, "Linear Algebra", uniID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !resolved.Valid || int(resolved.Int64) != existing {
		t.Fatalf("expected reuse of course %d, got %+v", existing, resolved)
	}

	if n := countRows(t, db, "SELECT COUNT(*) FROM courses WHERE university_id = ?", uniID); n != 1 {
		t.Fatalf("expected a single course row, got %d", n)
	}
}

func TestResolveCourseIDCreatesWhenAbsent(t *testing.T) {
	db := testDB(t)

	uniID := seedUniversity(t, db, "Test University", "test-university")

	resolved, err := ResolveCourseID(db, 0, "Quantum Mechanics", uniID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !resolved.Valid {
		t.Fatal("expected a created course id")
	}

	again, err := ResolveCourseID(db, 0, "Quantum Mechanics", uniID)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again.Int64 != resolved.Int64 {
		t.Fatalf("sequential resolves diverged: %d vs %d", resolved.Int64, again.Int64)
	}
	if n := countRows(t, db, "SELECT COUNT(*) FROM courses WHERE university_id = ?", uniID); n != 1 {
		t.Fatalf("expected a single course row, got %d", n)
	}
}

func TestEnsureProfessorCourseIdempotent(t *testing.T) {
	db := testDB(t)

	uniID := seedUniversity(t, db, "Test University", "test-university")
	profID := seedProfessor(t, db, "Emmy Noether", "Math", uniID)
	courseID := seedCourse(t, db, "Abstract Algebra", uniID)

	if err := EnsureProfessorCourse(db, profID, courseID); err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	if err := EnsureProfessorCourse(db, profID, courseID); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}

	n := countRows(t, db,
		"SELECT COUNT(*) FROM professor_courses WHERE professor_id = ? AND course_id = ?",
		profID, courseID)
	if n != 1 {
		t.Fatalf("expected exactly one association row, got %d", n)
	}
}
