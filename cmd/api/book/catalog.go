package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (s *Service) GetBook(ctx context.Context, actorID, id uuid.UUID) (Book, error) {
	if actorID == uuid.Nil {
		return Book{}, ErrResponseActorInvalid
	}
	return s.visibleBook(ctx, actorID, id)
}

/*
Archived and unshared books of other owners stay visible only to the borrowers that hold a
loan on them. Anyone else gets not found.
*/
func (s *Service) visibleBook(ctx context.Context, actorID, id uuid.UUID) (Book, error) {
	b, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if b.OwnedBy(actorID) || b.Lendable() {
		return b, nil
	}

	_, err = s.repo.GetLatestLoan(ctx, id, actorID)
	switch {
	case err == nil:
		return b, nil
	case KindOf(err) == NotFound:
		return Book{}, ErrResponseBookNotFound
	default:
		return Book{}, err
	}
}

func (s *Service) CreateBook(ctx context.Context, actorID uuid.UUID, req CreateBookRequest) (Book, error) {
	if err := s.checkActor(ctx, actorID); err != nil {
		return Book{}, err
	}
	if err := FilledFields(req); err != nil {
		return Book{}, err
	}

	createdAt := s.now()
	newBook := Book{
		ID:         uuid.New(),
		Title:      req.Title,
		AuthorName: req.AuthorName,
		ISBN:       req.ISBN,
		Synopsis:   req.Synopsis,
		OwnerID:    actorID,
		Shareable:  req.Shareable,
		Archived:   false,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	storedBook, err := s.repo.CreateBook(ctx, newBook)
	if err != nil {
		return Book{}, fmt.Errorf("creating book: %w", err)
	}

	s.publish(Event{Type: EventBookCreated, BookID: storedBook.ID, BookTitle: storedBook.Title, ActorID: actorID})
	return storedBook, nil
}

func (s *Service) ToggleShareable(ctx context.Context, actorID, bookID uuid.UUID) (Book, error) {
	updated, err := s.toggle(ctx, actorID, bookID, func(b *Book) { b.Shareable = !b.Shareable })
	if err != nil {
		return Book{}, err
	}
	s.publish(Event{Type: EventShareableToggled, BookID: updated.ID, BookTitle: updated.Title, ActorID: actorID})
	return updated, nil
}

func (s *Service) ToggleArchived(ctx context.Context, actorID, bookID uuid.UUID) (Book, error) {
	updated, err := s.toggle(ctx, actorID, bookID, func(b *Book) { b.Archived = !b.Archived })
	if err != nil {
		return Book{}, err
	}
	s.publish(Event{Type: EventArchivedToggled, BookID: updated.ID, BookTitle: updated.Title, ActorID: actorID})
	return updated, nil
}

/* Read, check owner and lending state, flip, write. Runs under the book lock. */
func (s *Service) toggle(ctx context.Context, actorID, bookID uuid.UUID, flip func(b *Book)) (Book, error) {
	if actorID == uuid.Nil {
		return Book{}, ErrResponseActorInvalid
	}

	var updated Book
	err := s.exclusive(ctx, bookKey(bookID), func(repo Repository) error {
		b, err := repo.GetBookByID(ctx, bookID)
		if err != nil {
			return err
		}
		if !b.OwnedBy(actorID) {
			return ErrResponseNotBookOwner
		}

		_, err = repo.GetActiveLoan(ctx, bookID)
		switch {
		case err == nil:
			return ErrResponseBookLentOut
		case KindOf(err) != NotFound:
			return err
		}

		flip(&b)
		b.UpdatedAt = s.now()
		updated, err = repo.UpdateBookFlags(ctx, b)
		return err
	})
	if err != nil {
		return Book{}, err
	}

	return updated, nil
}

func (s *Service) UploadCover(ctx context.Context, actorID, bookID uuid.UUID, cover []byte) error {
	if actorID == uuid.Nil {
		return ErrResponseActorInvalid
	}
	if len(cover) == 0 {
		return ErrResponseCoverEmpty
	}
	if len(cover) > MaxCoverSize {
		return ErrResponseCoverTooLarge
	}

	return s.exclusive(ctx, bookKey(bookID), func(repo Repository) error {
		b, err := repo.GetBookByID(ctx, bookID)
		if err != nil {
			return err
		}
		if !b.OwnedBy(actorID) {
			return ErrResponseNotBookOwner
		}
		return repo.SaveCover(ctx, bookID, cover)
	})
}

func (s *Service) GetCover(ctx context.Context, actorID, bookID uuid.UUID) ([]byte, error) {
	if actorID == uuid.Nil {
		return nil, ErrResponseActorInvalid
	}
	if _, err := s.visibleBook(ctx, actorID, bookID); err != nil {
		return nil, err
	}
	return s.repo.GetCover(ctx, bookID)
}
