package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                                  "/",
		"/metrics":                          "/metrics",
		"/api/v1/users/abc/unlock":          "/api/v1/users/:id/unlock",
		"/api/v1/students/export":           "/api/v1/students/export",
		"/api/v1/students/xyz/profile":      "/api/v1/students/:id/profile",
		"/api/v1/auth/login":                "/api/v1/auth/login",
		"/api/v1/students/export?format=csv": "/api/v1/students/export",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
