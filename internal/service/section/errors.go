package section

import "errors"

var (
	ErrNotFound        = errors.New("section not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrMemberNotFound  = errors.New("team member not found")
	ErrUnknownSection  = errors.New("unknown section name")
	ErrUnknownField    = errors.New("field does not belong to this section")
	ErrAlreadyExists   = errors.New("project already has this section")
	ErrNotItemSection  = errors.New("section does not hold items")
	ErrNotFlatSection  = errors.New("section has no flat details")
	ErrItemNameMissing = errors.New("item name is required")
	ErrNothingToUpdate = errors.New("nothing to update")
)
