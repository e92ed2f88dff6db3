package repository

import (
	"strings"
	"testing"
)

// Every note query must be tenant-scoped: these assertions guard against a
// refactor quietly widening a WHERE clause.

func TestNoteQueriesAreTenantScoped(t *testing.T) {
	cases := map[string]struct {
		query    string
		fragment string
	}{
		"list":   {listByTenantQuery, "where tenant_id = $1"},
		"get":    {getByIDQuery, "where id = $1 and tenant_id = $2"},
		"update": {updateQuery, "where id = $1 and tenant_id = $2"},
		"delete": {deleteQuery, "where id = $1 and tenant_id = $2"},
		"count":  {countByTenantQuery, "where tenant_id = $1"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			query := strings.Join(strings.Fields(strings.ToLower(tc.query)), " ")
			if !strings.Contains(query, tc.fragment) {
				t.Fatalf("expected tenant-scoped fragment %q in query %q", tc.fragment, query)
			}
		})
	}
}

func TestUpdateQueryNeverTouchesTenantID(t *testing.T) {
	query := strings.ToLower(updateQuery)
	setClause := query[strings.Index(query, "set"):strings.Index(query, "where")]
	if strings.Contains(setClause, "tenant_id") {
		t.Fatal("update must not modify tenant_id: a note's tenant is immutable")
	}
}

func TestInsertQueryRequiresTenantID(t *testing.T) {
	query := strings.ToLower(insertNoteQuery)
	if !strings.Contains(query, "insert into notes (tenant_id,") {
		t.Fatal("insert must take tenant_id as an explicit parameter")
	}
}

func TestCreateLocksTenantRow(t *testing.T) {
	if !strings.Contains(strings.ToLower(lockTenantPlanQuery), "for update") {
		t.Fatal("quota check must lock the tenant row to serialize concurrent creates")
	}
}
