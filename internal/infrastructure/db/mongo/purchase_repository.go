package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// PurchaseRepository commits the two sides of a purchase inside one Mongo
// session transaction. Each update carries a $gte guard on the field it
// decrements, so an interleaved purchase that would take stock or balance
// negative matches nothing and aborts the whole transaction.
type PurchaseRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewPurchaseRepository(client *mongo.Client, db *mongo.Database) *PurchaseRepository {
	return &PurchaseRepository{client: client, db: db}
}

type purchaseOutcome struct {
	product *domain.Product
	deposit int
}

// Execute decrements amount_available on the product and deposit on the
// buyer as a single atomic unit, returning the post-decrement product and
// the buyer's remaining deposit.
func (r *PurchaseRepository) Execute(ctx context.Context, buyerID, productID string, quantity, total int) (*domain.Product, int, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, 0, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	products := r.db.Collection(productsCollection)
	users := r.db.Collection(usersCollection)
	now := time.Now().UTC()

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		stockFilter := bson.M{"_id": productID, "amount_available": bson.M{"$gte": quantity}}
		stockUpdate := bson.M{
			"$inc": bson.M{"amount_available": -quantity},
			"$set": bson.M{"updated_at": now},
		}
		res, err := products.UpdateOne(sc, stockFilter, stockUpdate)
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		if res.MatchedCount == 0 {
			// Distinguish a vanished product from a concurrent sell-out.
			if err := products.FindOne(sc, bson.M{"_id": productID}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrProductNotFound
			}
			return nil, domain.ErrInsufficientStock
		}

		debitFilter := bson.M{"_id": buyerID, "deposit": bson.M{"$gte": total}}
		debitUpdate := bson.M{
			"$inc": bson.M{"deposit": -total},
			"$set": bson.M{"updated_at": now},
		}
		res, err = users.UpdateOne(sc, debitFilter, debitUpdate)
		if err != nil {
			return nil, fmt.Errorf("debit balance: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrInsufficientFunds
		}

		var pDoc productDoc
		if err := products.FindOne(sc, bson.M{"_id": productID}).Decode(&pDoc); err != nil {
			return nil, fmt.Errorf("read product after purchase: %w", err)
		}
		var uDoc userDoc
		if err := users.FindOne(sc, bson.M{"_id": buyerID}).Decode(&uDoc); err != nil {
			return nil, fmt.Errorf("read buyer after purchase: %w", err)
		}

		return purchaseOutcome{product: pDoc.toDomain(), deposit: uDoc.Deposit}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	outcome := result.(purchaseOutcome)
	return outcome.product, outcome.deposit, nil
}
