package store

import (
	"database/sql"

	"github.com/IAN-www1/MOOBILE/internal/models"
)

// CreateTicket inserts a ticket. The unique (order_id, customer_id) key makes
// a second ticket for the same order by the same customer an ErrConflict,
// even under concurrent submissions.
func (s *Store) CreateTicket(t *models.Ticket) error {
	res, err := s.DB.Exec(`
		INSERT INTO tickets (order_id, customer_id, reason, issue_description, solution, proof_image, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 'Open', CURRENT_TIMESTAMP)
	`, t.OrderID, t.CustomerID, t.Reason, t.IssueDescription, t.Solution, t.ProofImage)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	t.Status = "Open"
	return err
}

func scanTicket(row interface{ Scan(...any) error }) (*models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(&t.ID, &t.OrderID, &t.CustomerID, &t.Reason, &t.IssueDescription,
		&t.Solution, &t.ProofImage, &t.Status, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const ticketColumns = `id, order_id, customer_id, reason, issue_description, solution, proof_image, status, created_at`

func (s *Store) GetTicketByID(id int64) (*models.Ticket, error) {
	t, err := scanTicket(s.DB.QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Replies, err = s.loadReplies(t.ID)
	return t, err
}

func (s *Store) loadReplies(ticketID int64) ([]models.TicketReply, error) {
	rows, err := s.DB.Query(`
		SELECT id, message, sender, created_at FROM ticket_replies WHERE ticket_id = ? ORDER BY created_at, id
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []models.TicketReply
	for rows.Next() {
		var r models.TicketReply
		if err := rows.Scan(&r.ID, &r.Message, &r.Sender, &r.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, r)
	}
	return replies, rows.Err()
}

func (s *Store) queryTickets(query string, args ...any) ([]models.Ticket, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].Replies, err = s.loadReplies(tickets[i].ID); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

func (s *Store) GetAllTickets() ([]models.Ticket, error) {
	return s.queryTickets(`SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`)
}

func (s *Store) GetTicketsByUser(userID int64) ([]models.Ticket, error) {
	return s.queryTickets(`SELECT `+ticketColumns+` FROM tickets WHERE customer_id = ? ORDER BY created_at DESC`, userID)
}

// AddTicketReply appends to the ticket's reply thread. Replies are
// append-only; there is no edit or delete.
func (s *Store) AddTicketReply(ticketID int64, reply *models.TicketReply) error {
	if _, err := s.GetTicketByID(ticketID); err != nil {
		return err
	}
	res, err := s.DB.Exec(`
		INSERT INTO ticket_replies (ticket_id, message, sender, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, ticketID, reply.Message, reply.Sender)
	if err != nil {
		return err
	}
	reply.ID, err = res.LastInsertId()
	return err
}
