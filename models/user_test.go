package models

import "testing"

func TestHasPermission(t *testing.T) {
	staff := User{Role: "staff", Permissions: "finance:read, bookings:delete"}
	if !staff.HasPermission("finance:read") {
		t.Fatal("listed permission must pass")
	}
	if !staff.HasPermission("bookings:delete") {
		t.Fatal("whitespace around entries must be tolerated")
	}
	if staff.HasPermission("finance:write") {
		t.Fatal("unlisted permission must fail")
	}
	if staff.HasPermission("finance") {
		t.Fatal("no prefix matching")
	}

	admin := User{Role: "admin"}
	if !admin.HasPermission("anything:at-all") {
		t.Fatal("admin passes every permission")
	}

	empty := User{Role: "staff"}
	if empty.HasPermission("finance:read") {
		t.Fatal("empty permission list grants nothing")
	}
}
