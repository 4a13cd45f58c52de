package testutil

import "testing"

// Given names the starting state of a workflow test, e.g. a record already
// submitted. When and Then name the action and the expected outcome. Each
// runs as a subtest so failures point at the step that broke.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
