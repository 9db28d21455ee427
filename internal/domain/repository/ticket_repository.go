package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// TicketRepository is the persistence port for Ticket.
type TicketRepository interface {
	Create(ticket *entity.Ticket) error
	GetByID(id string) (*entity.Ticket, error)
	List(status string, limit, offset int) ([]*entity.Ticket, error)
	Update(ticket *entity.Ticket) error
}
