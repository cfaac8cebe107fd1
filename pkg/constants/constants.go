package constants

import "github.com/go-playground/validator/v10"

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	OperatorKey  ContextKey = "operator"
	RequestStart ContextKey = "requestStart"
)

// Validate is the shared validator instance; struct tags are the single
// source of request validation rules.
var Validate = validator.New()
