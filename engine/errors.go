package engine

import "github.com/cockroachdb/errors"

// ErrTransactionFailed is the sentinel cause wrapped around any internal
// inconsistency the engine detects while recomputing a file's derived
// relations: a file with more than one root scope, a file with scopes but
// no root, or a scope referencing a parent never registered. This should be impossible for
// well-formed input produced by a correct extractor; it exists to fail
// loudly (rolling the commit back) rather than silently materialize a
// corrupt derived state.
var ErrTransactionFailed = errors.New("engine: transaction failed")

func transactionFailedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrTransactionFailed, format, args...)
}
