package ports

// InterpreterResolver locates the interpreter that runs the server.
//
//go:generate mockgen -source=interpreter.go -destination=mocks/mock_interpreter.go -package=mocks
type InterpreterResolver interface {
	// Resolve returns the absolute path of the first candidate found.
	// Candidates are names looked up on PATH or paths to an executable.
	Resolve(candidates []string) (string, error)
}
