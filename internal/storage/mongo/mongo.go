// Package mongo provides a MongoDB-backed implementation of the
// storage.Store interface over the four record collections.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// Collection name constants.
const (
	colUsers    = "users"
	colExpenses = "expenses"
	colGroups   = "groups"
	colPayments = "payments"
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// MongoStore implements storage.Store using MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and prepares the collections, including the unique
// email index on users.
func New(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(database)}
	if err := s.Ping(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	_, err = s.db.Collection(colUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create email index: %w", err)
	}

	return s, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateUser persists a new user.
func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == "" {
		user.CreatedAt = now()
	}
	if _, err := s.db.Collection(colUsers).InsertOne(ctx, toUserDoc(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email, or (nil, nil) if missing.
func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return fromUserDoc(&doc), nil
}

// CreateGroup persists a new group.
func (s *MongoStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == "" {
		group.CreatedAt = now()
	}
	if _, err := s.db.Collection(colGroups).InsertOne(ctx, toGroupDoc(group)); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, or (nil, nil) if missing.
func (s *MongoStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var doc groupDoc
	err := s.db.Collection(colGroups).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return fromGroupDoc(&doc), nil
}

// GetGroupByNameAndCreator retrieves a group by its per-creator unique name.
func (s *MongoStore) GetGroupByNameAndCreator(ctx context.Context, name, creator string) (*models.Group, error) {
	var doc groupDoc
	err := s.db.Collection(colGroups).FindOne(ctx, bson.M{"name": name, "created_by": creator}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by name: %w", err)
	}
	return fromGroupDoc(&doc), nil
}

// ListGroupsForUser retrieves groups created by or including email.
func (s *MongoStore) ListGroupsForUser(ctx context.Context, email string) ([]*models.Group, error) {
	filter := bson.M{"$or": []bson.M{{"created_by": email}, {"members": email}}}
	cursor, err := s.db.Collection(colGroups).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	var docs []groupDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	groups := make([]*models.Group, len(docs))
	for i := range docs {
		groups[i] = fromGroupDoc(&docs[i])
	}
	return groups, nil
}

// CreateExpense persists a new expense.
func (s *MongoStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == "" {
		expense.CreatedAt = now()
	}
	if _, err := s.db.Collection(colExpenses).InsertOne(ctx, toExpenseDoc(expense)); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, or (nil, nil) if missing.
func (s *MongoStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var doc expenseDoc
	err := s.db.Collection(colExpenses).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return fromExpenseDoc(&doc), nil
}

// ListExpensesByParticipant retrieves expenses where email is a participant.
func (s *MongoStore) ListExpensesByParticipant(ctx context.Context, email string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, bson.M{"participants": email})
}

// ListExpensesByCreator retrieves expenses recorded by email.
func (s *MongoStore) ListExpensesByCreator(ctx context.Context, email string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, bson.M{"created_by": email})
}

// ListExpensesByMethod retrieves expenses with the given split method.
func (s *MongoStore) ListExpensesByMethod(ctx context.Context, method string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, bson.M{"split_method": method})
}

func (s *MongoStore) listExpenses(ctx context.Context, filter bson.M) ([]*models.Expense, error) {
	cursor, err := s.db.Collection(colExpenses).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	var docs []expenseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}
	expenses := make([]*models.Expense, len(docs))
	for i := range docs {
		expenses[i] = fromExpenseDoc(&docs[i])
	}
	return expenses, nil
}

// UpdateExpenseSplits rewrites an expense's splits and method in place.
func (s *MongoStore) UpdateExpenseSplits(ctx context.Context, id string, splits map[string]float64, method string) error {
	_, err := s.db.Collection(colExpenses).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"splits": splits, "split_method": method}},
	)
	if err != nil {
		return fmt.Errorf("failed to update expense splits: %w", err)
	}
	return nil
}

// CreatePayment persists a new payment.
func (s *MongoStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == "" {
		payment.CreatedAt = now()
	}
	if _, err := s.db.Collection(colPayments).InsertOne(ctx, toPaymentDoc(payment)); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ListPaymentsByUser retrieves payments where email is payer or payee.
func (s *MongoStore) ListPaymentsByUser(ctx context.Context, email string) ([]*models.Payment, error) {
	filter := bson.M{"$or": []bson.M{{"payer": email}, {"payee": email}}}
	cursor, err := s.db.Collection(colPayments).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	var docs []paymentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	payments := make([]*models.Payment, len(docs))
	for i := range docs {
		payments[i] = fromPaymentDoc(&docs[i])
	}
	return payments, nil
}

// Counts returns per-collection record counts.
func (s *MongoStore) Counts(ctx context.Context) (storage.Counts, error) {
	var counts storage.Counts
	for col, dst := range map[string]*int{
		colUsers:    &counts.Users,
		colExpenses: &counts.Expenses,
		colGroups:   &counts.Groups,
		colPayments: &counts.Payments,
	} {
		n, err := s.db.Collection(col).CountDocuments(ctx, bson.M{})
		if err != nil {
			return storage.Counts{}, fmt.Errorf("failed to count %s: %w", col, err)
		}
		*dst = int(n)
	}
	return counts, nil
}

// Name identifies the backend.
func (s *MongoStore) Name() string { return "mongo" }

// Collections lists the collection identifiers.
func (s *MongoStore) Collections() []string {
	return []string{colUsers, colExpenses, colGroups, colPayments}
}

// Ping checks database connectivity.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
