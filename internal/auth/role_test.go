package auth

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := map[string]struct {
		want    Role
		wantErr bool
	}{
		"super_admin":        {want: RoleSuperAdmin},
		"  Faculty  ":        {want: RoleFaculty},
		"ADMISSION_OFFICER":  {want: RoleAdmissionOfficer},
		"student":            {want: RoleStudent},
		"":                   {wantErr: true},
		"admin":              {wantErr: true},
		"superadmin":         {wantErr: true},
		"super_admin; extra": {wantErr: true},
	}
	for in, tc := range cases {
		got, err := ParseRole(in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ParseRole(%q) err = %v, want ErrInvalidInput", in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", in, got, tc.want)
		}
	}
}

func TestAuthorize(t *testing.T) {
	if err := Authorize(RoleSuperAdmin, RoleSuperAdmin); err != nil {
		t.Fatalf("exact match denied: %v", err)
	}
	if err := Authorize(RoleAdmissionOfficer, RoleAdmissionOfficer, RoleSuperAdmin); err != nil {
		t.Fatalf("set membership denied: %v", err)
	}
	if err := Authorize(RoleStudent, RoleSuperAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	// No role implies another: super_admin is not a free pass unless listed.
	if err := Authorize(RoleSuperAdmin, RoleStudent); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for unlisted super_admin", err)
	}
	if err := Authorize(RoleFaculty); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for empty required set", err)
	}
}
