package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"ranking-uni/models"
)

func searchCourses(t *testing.T, handler func(w *httptest.ResponseRecorder)) []models.CourseSuggestion {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w)
	if w.Code != 200 {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var results []models.CourseSuggestion
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return results
}

// A nil database proves the short-query guard returns before any store call.
func TestSearchCoursesShortQuerySkipsStore(t *testing.T) {
	handler := (&CourseController{}).SearchCourses(nil)

	cases := []struct {
		name string
		url  string
	}{
		{name: "empty_query", url: "/courses/search?q=&university_id=1"},
		{name: "single_rune", url: "/courses/search?q=a&university_id=1"},
		{name: "accent_only_rune", url: "/courses/search?q=é&university_id=1"},
		{name: "missing_university", url: "/courses/search?q=calculus"},
		{name: "whitespace_padding", url: "/courses/search?q=++b++&university_id=1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := searchCourses(t, func(w *httptest.ResponseRecorder) {
				handler(w, httptest.NewRequest("GET", tc.url, nil))
			})
			if len(results) != 0 {
				t.Fatalf("expected empty result set, got %d rows", len(results))
			}
		})
	}
}

func TestSearchCoursesDiacriticFallback(t *testing.T) {
	db := testDB(t)

	uniID := seedUniversity(t, db, "Test University", "test-university")
	seedCourse(t, db, "Cafe Studies", uniID)
	seedCourse(t, db, "Calculus", uniID)

	handler := (&CourseController{}).SearchCourses(db)
	results := searchCourses(t, func(w *httptest.ResponseRecorder) {
		r := httptest.NewRequest("GET", "/courses/search?q=caf%C3%A9&university_id="+itoa(uniID), nil)
		handler(w, r)
	})

	// The fallback tier re-normalizes stored names, so an accented query
	// still finds the plain-ASCII course.
	if len(results) != 1 || results[0].Name != "Cafe Studies" {
		t.Fatalf("expected the normalized match, got %+v", results)
	}
}

func TestSearchCoursesFastTierCapsAtFive(t *testing.T) {
	db := testDB(t)

	uniID := seedUniversity(t, db, "Test University", "test-university")
	names := []string{
		"Algebra I", "Algebra II", "Algebra III",
		"Linear Algebra", "Abstract Algebra", "Algebraic Geometry",
	}
	for _, name := range names {
		seedCourse(t, db, name, uniID)
	}

	handler := (&CourseController{}).SearchCourses(db)
	results := searchCourses(t, func(w *httptest.ResponseRecorder) {
		r := httptest.NewRequest("GET", "/courses/search?q=algebra&university_id="+itoa(uniID), nil)
		handler(w, r)
	})

	if len(results) != 5 {
		t.Fatalf("expected the result cap of 5, got %d", len(results))
	}
}
