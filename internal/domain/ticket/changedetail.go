package ticket

import (
	"fmt"
	"strconv"
)

// PropertyKind classifies what a change detail records.
type PropertyKind string

const (
	PropertyAttachment PropertyKind = "attachment"
	PropertyAttribute  PropertyKind = "attr"
	PropertyCustom     PropertyKind = "cf"
	PropertyRelation   PropertyKind = "relation"
)

func (k PropertyKind) String() string {
	return string(k)
}

func (k PropertyKind) IsValid() bool {
	switch k {
	case PropertyAttachment, PropertyAttribute, PropertyCustom, PropertyRelation:
		return true
	}
	return false
}

// ChangeDetail is one field-level change recorded with a comment.
// (property, propKey) is unique within its comment.
type ChangeDetail struct {
	id        uint
	commentID uint
	property  PropertyKind
	propKey   string
	oldValue  *string
	value     *string
}

func NewChangeDetail(commentID uint, property PropertyKind, propKey string, oldValue, value *string) (*ChangeDetail, error) {
	if commentID == 0 {
		return nil, fmt.Errorf("comment ID is required")
	}
	if !property.IsValid() {
		return nil, fmt.Errorf("invalid property kind: %s", property)
	}
	if propKey == "" {
		return nil, fmt.Errorf("property key is required")
	}

	return &ChangeDetail{
		commentID: commentID,
		property:  property,
		propKey:   propKey,
		oldValue:  oldValue,
		value:     value,
	}, nil
}

func ReconstructChangeDetail(id, commentID uint, property PropertyKind, propKey string, oldValue, value *string) (*ChangeDetail, error) {
	if id == 0 {
		return nil, fmt.Errorf("change detail ID cannot be zero")
	}

	return &ChangeDetail{
		id:        id,
		commentID: commentID,
		property:  property,
		propKey:   propKey,
		oldValue:  oldValue,
		value:     value,
	}, nil
}

// CopyTo returns an unsaved detail with the same kind, key and values on commentID.
func (d *ChangeDetail) CopyTo(commentID uint) (*ChangeDetail, error) {
	return NewChangeDetail(commentID, d.property, d.propKey, d.oldValue, d.value)
}

func (d *ChangeDetail) ID() uint {
	return d.id
}

func (d *ChangeDetail) CommentID() uint {
	return d.commentID
}

func (d *ChangeDetail) Property() PropertyKind {
	return d.property
}

func (d *ChangeDetail) PropKey() string {
	return d.propKey
}

func (d *ChangeDetail) OldValue() *string {
	return d.oldValue
}

func (d *ChangeDetail) Value() *string {
	return d.value
}

func (d *ChangeDetail) IsAttachment() bool {
	return d.property == PropertyAttachment
}

// AttachmentID returns the attachment referenced by an attachment detail.
// ok is false for other kinds or a key that is not a positive integer.
func (d *ChangeDetail) AttachmentID() (uint, bool) {
	if !d.IsAttachment() {
		return 0, false
	}
	v, err := strconv.ParseUint(d.propKey, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func (d *ChangeDetail) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("change detail ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("change detail ID cannot be zero")
	}
	d.id = id
	return nil
}
