/*
Package errors provides the error taxonomy of the adminstore access layer.

Every typed error matches a sentinel through errors.Is, so callers can branch
on the category without depending on the concrete type:

	var (
	    ErrNotFound        = errors.New("entity not found")
	    ErrMalformedKey    = errors.New("malformed key")
	    ErrEmptyUpdate     = errors.New("empty update")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	)

Usage:

	bot, err := store.Bots.Update(ctx, changes, "42")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // the row does not exist; updates never create rows
	    }
	    return err
	}

Failures raised by the store itself are not translated. They arrive wrapped
with the failing operation's name and keep their original type, so
errors.As against the SDK exception types still works. StoreErrorCode
exposes the API error code for logs and metrics.
*/
package errors
