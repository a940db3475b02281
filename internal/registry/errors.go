package registry

import "errors"

// ErrDuplicateStudentID reports an enrollment with an already-used student
// number.
var ErrDuplicateStudentID = errors.New("student id already enrolled")
