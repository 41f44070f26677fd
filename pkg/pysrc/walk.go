package pysrc

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(s *Stmt) error

// Walk performs a pre-order traversal of the statements and their children.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(stmts []*Stmt, walkFunc WalkFunc) error {
	for _, stmt := range stmts {
		if err := walkFunc(stmt); err != nil {
			return err
		}
		if err := Walk(stmt.Children, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all statements matching the predicate in source order.
func FindAll(stmts []*Stmt, predicate func(s *Stmt) bool) []*Stmt {
	var result []*Stmt

	//nolint:errcheck,revive // callback never fails
	Walk(stmts, func(stmt *Stmt) error {
		if predicate(stmt) {
			result = append(result, stmt)
		}
		return nil
	})

	return result
}

// Imports returns every import statement in the module in source order.
func (m *Module) Imports() []*Stmt {
	return FindAll(m.Body, (*Stmt).IsImport)
}

// Definitions returns the top-level def and class statements.
func (m *Module) Definitions() []*Stmt {
	var defs []*Stmt
	for _, stmt := range m.Body {
		if stmt.IsDefinition() {
			defs = append(defs, stmt)
		}
	}
	return defs
}
