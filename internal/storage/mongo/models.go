package mongo

import "splitledger/internal/models"

// Document shapes mirror the field names of the original splitwise_db
// collections, so an existing database keeps working.

type userDoc struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	Name         string `bson:"name"`
	PasswordHash string `bson:"hashed_password"`
	CreatedAt    string `bson:"created_at"`
}

type groupDoc struct {
	ID                  string   `bson:"_id"`
	Name                string   `bson:"name"`
	Members             []string `bson:"members"`
	CreatedBy           string   `bson:"created_by"`
	CreatedAt           string   `bson:"created_at"`
	UnregisteredMembers []string `bson:"unregistered_members,omitempty"`
}

type expenseDoc struct {
	ID                       string             `bson:"_id"`
	Description              string             `bson:"description"`
	Amount                   float64            `bson:"amount"`
	Participants             []string           `bson:"participants"`
	PaidBy                   string             `bson:"paid_by"`
	SplitMethod              string             `bson:"split_method"`
	Splits                   map[string]float64 `bson:"splits,omitempty"`
	CreatedAt                string             `bson:"created_at"`
	GroupID                  string             `bson:"group_id,omitempty"`
	CreatedBy                string             `bson:"created_by"`
	UnregisteredParticipants []string           `bson:"unregistered_participants,omitempty"`
}

type paymentDoc struct {
	ID           string   `bson:"_id"`
	Amount       float64  `bson:"amount"`
	Payer        string   `bson:"payer"`
	Payee        string   `bson:"payee"`
	Description  string   `bson:"description"`
	CreatedAt    string   `bson:"created_at"`
	GroupID      string   `bson:"group_id,omitempty"`
	Unregistered []string `bson:"unregistered,omitempty"`
}

func toUserDoc(u *models.User) *userDoc {
	return &userDoc{ID: u.ID, Email: u.Email, Name: u.Name, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
}

func fromUserDoc(d *userDoc) *models.User {
	return &models.User{ID: d.ID, Email: d.Email, Name: d.Name, PasswordHash: d.PasswordHash, CreatedAt: d.CreatedAt}
}

func toGroupDoc(g *models.Group) *groupDoc {
	return &groupDoc{
		ID:                  g.ID,
		Name:                g.Name,
		Members:             g.Members,
		CreatedBy:           g.CreatedBy,
		CreatedAt:           g.CreatedAt,
		UnregisteredMembers: g.UnregisteredMembers,
	}
}

func fromGroupDoc(d *groupDoc) *models.Group {
	return &models.Group{
		ID:                  d.ID,
		Name:                d.Name,
		Members:             d.Members,
		CreatedBy:           d.CreatedBy,
		CreatedAt:           d.CreatedAt,
		UnregisteredMembers: d.UnregisteredMembers,
	}
}

func toExpenseDoc(e *models.Expense) *expenseDoc {
	return &expenseDoc{
		ID:                       e.ID,
		Description:              e.Description,
		Amount:                   e.Amount,
		Participants:             e.Participants,
		PaidBy:                   e.PaidBy,
		SplitMethod:              e.SplitMethod,
		Splits:                   e.Splits,
		CreatedAt:                e.CreatedAt,
		GroupID:                  e.GroupID,
		CreatedBy:                e.CreatedBy,
		UnregisteredParticipants: e.UnregisteredParticipants,
	}
}

func fromExpenseDoc(d *expenseDoc) *models.Expense {
	return &models.Expense{
		ID:                       d.ID,
		Description:              d.Description,
		Amount:                   d.Amount,
		Participants:             d.Participants,
		PaidBy:                   d.PaidBy,
		SplitMethod:              d.SplitMethod,
		Splits:                   d.Splits,
		CreatedAt:                d.CreatedAt,
		GroupID:                  d.GroupID,
		CreatedBy:                d.CreatedBy,
		UnregisteredParticipants: d.UnregisteredParticipants,
	}
}

func toPaymentDoc(p *models.Payment) *paymentDoc {
	return &paymentDoc{
		ID:           p.ID,
		Amount:       p.Amount,
		Payer:        p.Payer,
		Payee:        p.Payee,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		GroupID:      p.GroupID,
		Unregistered: p.Unregistered,
	}
}

func fromPaymentDoc(d *paymentDoc) *models.Payment {
	return &models.Payment{
		ID:           d.ID,
		Amount:       d.Amount,
		Payer:        d.Payer,
		Payee:        d.Payee,
		Description:  d.Description,
		CreatedAt:    d.CreatedAt,
		GroupID:      d.GroupID,
		Unregistered: d.Unregistered,
	}
}
