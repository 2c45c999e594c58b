package ticket

import (
	"fmt"
	"time"
)

// Ticket is a trackable work item. Its id never changes once assigned.
type Ticket struct {
	id         uint
	subject    string
	projectID  uint
	authorID   uint
	assigneeID *uint
	createdAt  time.Time
}

func ReconstructTicket(
	id uint,
	subject string,
	projectID uint,
	authorID uint,
	assigneeID *uint,
	createdAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}

	return &Ticket{
		id:         id,
		subject:    subject,
		projectID:  projectID,
		authorID:   authorID,
		assigneeID: assigneeID,
		createdAt:  createdAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) ProjectID() uint {
	return t.projectID
}

func (t *Ticket) AuthorID() uint {
	return t.authorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

// Project groups tickets.
type Project struct {
	id   uint
	name string
}

func ReconstructProject(id uint, name string) (*Project, error) {
	if id == 0 {
		return nil, fmt.Errorf("project ID cannot be zero")
	}
	return &Project{id: id, name: name}, nil
}

func (p *Project) ID() uint {
	return p.id
}

func (p *Project) Name() string {
	return p.name
}
