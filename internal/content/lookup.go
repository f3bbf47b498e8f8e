package content

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("content: not found")

// NotFoundError reports a lookup outside the declared content.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content: %s %s not found", e.Kind, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Code is picked up by the router as err_code.
func (e *NotFoundError) Code() string {
	return "content_not_found"
}

// SemesterKey returns the curriculum key of semester n ("semester3").
func SemesterKey(n int) string {
	return "semester" + strconv.Itoa(n)
}

// Semester returns semester n (1-based).
func (c *Content) Semester(n int) (*Semester, error) {
	if c == nil {
		return nil, &NotFoundError{Kind: "semester", Key: SemesterKey(n)}
	}
	key := SemesterKey(n)
	sem, ok := c.Curriculum[key]
	if !ok {
		return nil, &NotFoundError{Kind: "semester", Key: key}
	}
	return &sem, nil
}

// Course returns the course at index i (0-based) of semester n.
func (c *Content) Course(n, i int) (*Course, error) {
	sem, err := c.Semester(n)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(sem.Courses) {
		return nil, &NotFoundError{Kind: "course", Key: fmt.Sprintf("%s[%d]", SemesterKey(n), i)}
	}
	return &sem.Courses[i], nil
}
