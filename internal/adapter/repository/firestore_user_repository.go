package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) users() *firestore.CollectionRef {
	return r.client.Collection(colUsers)
}

func (r *firestoreUserRepository) emailRef(email string) *firestore.DocumentRef {
	return r.client.Collection(colUserEmails).Doc(keyDocID(email))
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.emailRef(user.Email), map[string]interface{}{"userId": user.ID}); err != nil {
			return err
		}
		return tx.Create(r.users().Doc(user.ID), user)
	})
	return firestoreError("User", err, emailTaken)
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.users().Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError("User", err, "")
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	doc, err := r.emailRef(email).Get(ctx)
	if err != nil {
		return nil, firestoreError("User", err, "")
	}
	userID, _ := doc.Data()["userId"].(string)
	return r.GetByID(ctx, userID)
}

func (r *firestoreUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	users, err := getAllByID[entity.User](ctx, r.client, colUsers, ids)
	return users, firestoreError("User", err, "")
}

// Update overwrites the whole document so cleared reset fields are dropped.
func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	ref := r.users().Doc(user.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		current, _ := doc.Data()["email"].(string)
		if current != user.Email {
			if err := tx.Create(r.emailRef(user.Email), map[string]interface{}{"userId": user.ID}); err != nil {
				return err
			}
			if err := tx.Delete(r.emailRef(current)); err != nil {
				return err
			}
		}
		return tx.Set(ref, user)
	})
	return firestoreError("User", err, emailTaken)
}

func (r *firestoreUserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	total, err := countQuery(ctx, r.users().Query)
	if err != nil {
		return nil, 0, firestoreError("User", err, "")
	}

	q := pageQuery(r.users().OrderBy("createdAt", firestore.Desc), limit, offset)
	users, err := docsTo[entity.User](q.Documents(ctx))
	if err != nil {
		return nil, 0, firestoreError("User", err, "")
	}
	return users, total, nil
}

func (r *firestoreUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := countQuery(ctx, r.users().Query)
	return n, firestoreError("User", err, "")
}

func (r *firestoreUserRepository) FindByResetToken(ctx context.Context, email, tokenHash string, now time.Time) (*entity.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.ResetTokenHash == "" || user.ResetTokenHash != tokenHash ||
		user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(now) {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *firestoreUserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	docs, err := r.users().Where("resetTokenExpiry", "<=", now).Documents(ctx).GetAll()
	if err != nil {
		return 0, firestoreError("User", err, "")
	}
	if len(docs) == 0 {
		return 0, nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, doc := range docs {
		job, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "resetTokenHash", Value: firestore.Delete},
			{Path: "resetTokenExpiry", Value: firestore.Delete},
		})
		if err != nil {
			bw.End()
			return 0, firestoreError("User", err, "")
		}
		jobs = append(jobs, job)
	}
	bw.End()

	var cleared int64
	for _, job := range jobs {
		if _, err := job.Results(); err == nil {
			cleared++
		}
	}
	return cleared, nil
}
