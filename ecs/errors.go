package ecs

import "github.com/rotisserie/eris"

var (
	ErrEntityDoesNotExist   = eris.New("entity does not exist")
	ErrComponentNotOnEntity = eris.New("component not on entity")
	ErrNilComponentValue    = eris.New("nil component value")
)
