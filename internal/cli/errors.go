package cli

import (
	"errors"
	"fmt"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

func isNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}
