package sqlite

import "fmt"

// ConnError reports a failure to open the database file. It is fatal to
// startup; nothing else in the store works without a connection.
type ConnError struct {
	Path string
	Err  error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("open database %s: %v", e.Path, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// QueryError reports a single failed statement. The statement is carried
// for diagnostics; parameters are not, since they may hold customer data.
type QueryError struct {
	Stmt string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v (stmt: %s)", e.Err, compact(e.Stmt))
}

func (e *QueryError) Unwrap() error { return e.Err }

// compact collapses a multi-line statement to a single line for logs.
func compact(stmt string) string {
	out := make([]byte, 0, len(stmt))
	space := true
	for i := 0; i < len(stmt); i++ {
		c := stmt[i]
		if c == '\n' || c == '\t' || c == ' ' {
			if !space {
				out = append(out, ' ')
			}
			space = true
			continue
		}
		space = false
		out = append(out, c)
	}
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return string(out)
}
