package binding

import "errors"

var errUnbound = errors.New("binding is not attached to a client")
