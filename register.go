// FILE: lixenwraith/objtemplate/register.go
package objtemplate

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// HelperFunc transforms a resolved value before it is written
type HelperFunc func(value any) any

// Registry is a named table of helpers consulted while writing.
// It is safe for concurrent use.
type Registry struct {
	helpers map[string]HelperFunc
	logger  *slog.Logger
	mutex   sync.RWMutex
}

// NewRegistry creates an empty helper registry
func NewRegistry() *Registry {
	return &Registry{
		helpers: make(map[string]HelperFunc),
		logger:  discardLogger(),
	}
}

// defaultRegistry backs the package-level RegisterHelper and Create
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by package-level calls
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterHelper stores fn in the process-wide registry
func RegisterHelper(name string, fn HelperFunc) {
	defaultRegistry.Register(name, fn)
}

// Register stores fn under name, replacing any earlier registration.
// A nil fn registers the identity transform.
func (r *Registry) Register(name string, fn HelperFunc) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.helpers[name] = fn
}

// RegisterExpr compiles an expr-lang expression and registers it as a helper.
// The expression sees the resolved value as `value`. Evaluation errors leave
// the value unchanged and are logged at warn level.
func (r *Registry) RegisterExpr(name, source string) error {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("failed to compile helper %q: %w", name, err)
	}
	r.Register(name, r.exprHelper(name, program))
	return nil
}

// RegisterExprs registers every name -> expression pair, in sorted name order.
// All compile errors are reported; valid expressions are still registered.
func (r *Registry) RegisterExprs(sources map[string]string) error {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := r.RegisterExpr(name, sources[name]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to register %d helper(s): %w", len(errs), errors.Join(errs...))
	}
	return nil
}

func (r *Registry) exprHelper(name string, program *vm.Program) HelperFunc {
	return func(value any) any {
		out, err := expr.Run(program, exprEnv(value))
		if err != nil {
			r.mutex.RLock()
			logger := r.logger
			r.mutex.RUnlock()
			logger.Warn("helper evaluation failed", "helper", name, "error", err)
			return value
		}
		return out
	}
}

func exprEnv(value any) map[string]any {
	return map[string]any{"value": value}
}

// Lookup returns the helper registered under name. Unknown names and the
// empty name resolve to nil, meaning no transform.
func (r *Registry) Lookup(name string) (HelperFunc, bool) {
	if name == "" {
		return nil, false
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	fn, ok := r.helpers[name]
	return fn, ok
}

// Names returns the registered helper names in sorted order
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetLogger sets the logger used to report helper evaluation failures
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = discardLogger()
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.logger = logger
}
