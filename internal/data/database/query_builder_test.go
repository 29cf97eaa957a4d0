package database

import "testing"

func TestBuildListQuery_BasicSelect(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("users"))

	expected := `SELECT * FROM "users"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithColumns(t *testing.T) {
	query, _ := BuildListQuery(NewListQueryOptions("cars",
		WithColumns("id", "brand", "model"),
	))

	expected := `SELECT "id", "brand", "model" FROM "cars"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("cars",
		WithCountOnly(),
		WithCondition(WhereCond("imported", Equal, true)),
		WithLimit(10),
	))

	expected := `SELECT COUNT(*) FROM "cars" WHERE "imported" = $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 || args[0] != true {
		t.Errorf("Expected [true], got %v", args)
	}
}

func TestBuildListQuery_WhereAndPagination(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("users",
		WithColumns("id", "username"),
		WithCondition(WhereCond("username", Equal, "alice")),
		WithCondition(WhereCond("fullname", ILike, "%smith%")),
		WithOrderBy("id", "asc"),
		WithLimit(50),
		WithOffset(0),
	))

	expected := `SELECT "id", "username" FROM "users" WHERE "username" = $1 AND "fullname" ILIKE $2 ORDER BY "id" ASC LIMIT $3 OFFSET $4`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	want := []any{"alice", "%smith%", 50, 0}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: expected %v, got %v", i, want[i], args[i])
		}
	}
}

func TestBuildListQuery_IgnoresInvalidConditionsAndDirection(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("cars",
		WithCondition(WhereCond("", Equal, 1)),
		WithCondition(WhereCond("brand", ConditionType("; DROP"), "x")),
		WithOrderBy("id", "sideways"),
		WithLimit(-5),
	))

	expected := `SELECT * FROM "cars" ORDER BY "id"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_SQLInjectionPrevention(t *testing.T) {
	query, _ := BuildListQuery(NewListQueryOptions(`users"; DROP TABLE users; --`,
		WithOrderBy(`id"; DROP TABLE users; --`, "DESC"),
	))

	expected := `SELECT * FROM "users""; DROP TABLE users; --" ORDER BY "id""; DROP TABLE users; --" DESC`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_Nil(t *testing.T) {
	query, args := BuildListQuery(nil)
	if query != "" || args != nil {
		t.Errorf("Expected empty result, got %q %v", query, args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	name := "Corolla"
	var imported *bool

	b := NewUpdate("cars")
	SetIf(b, "model", &name)
	SetIf(b, "imported", imported)
	b.Set("updated_at", "now")

	query, args := b.Build(42, []string{"id", "model"})
	expected := `UPDATE "cars" SET "model" = $1, "updated_at" = $2 WHERE "id" = $3 RETURNING "id", "model"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 3 || args[0] != "Corolla" || args[2] != int64(42) {
		t.Errorf("unexpected args %v", args)
	}
}

func TestUpdateBuilder_Empty(t *testing.T) {
	var s *string
	b := SetIf(NewUpdate("users"), "username", s)
	if !b.Empty() {
		t.Error("Expected empty builder")
	}
}
