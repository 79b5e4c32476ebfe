package catalog

import (
	"errors"
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"storefront/models"
)

// ErrInvalidExpression is returned when a where-expression is too long, does
// not compile to a boolean over product fields or fails at evaluation time
var ErrInvalidExpression = errors.New("catalog: invalid expression")

const (
	// MaxExpressionLength bounds a where-expression in bytes
	MaxExpressionLength = 256
	// DefaultProgramCacheSize is how many compiled expressions are kept
	DefaultProgramCacheSize = 128
)

// ExprFilter evaluates boolean expressions such as `Price < 50 && IsBestSeller`
// against products. The most recently used compiled programs are cached.
type ExprFilter struct {
	programs *lru.Cache[string, *exprvm.Program]
}

// NewExprFilter creates a filter caching up to size compiled programs;
// size <= 0 means DefaultProgramCacheSize
func NewExprFilter(size int) *ExprFilter {
	if size <= 0 {
		size = DefaultProgramCacheSize
	}
	programs, err := lru.New[string, *exprvm.Program](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &ExprFilter{programs: programs}
}

// Filter keeps products for which expression is true, preserving order.
// An empty expression keeps everything.
func (f *ExprFilter) Filter(products []models.Product, expression string) ([]models.Product, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return products, nil
	}
	program, err := f.program(expression)
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		result, err := exprlang.Run(program, p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		if ok, _ := result.(bool); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *ExprFilter) program(expression string) (*exprvm.Program, error) {
	if len(expression) > MaxExpressionLength {
		return nil, fmt.Errorf("%w: longer than %d bytes", ErrInvalidExpression, MaxExpressionLength)
	}
	if cached, ok := f.programs.Get(expression); ok {
		return cached, nil
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(models.Product{}),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	f.programs.Add(expression, program)
	return program, nil
}
