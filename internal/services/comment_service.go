package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/query"
	"github.com/yukikurage/issue-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthor       = errors.New("only the comment author can perform this action")
	ErrContentEmpty    = errors.New("content cannot be empty")
)

// CommentService handles comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, issueRepo repository.IssueRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
	}
}

// CreateComment creates a comment on an issue. Content is trimmed and must
// not be empty afterwards.
func (s *CommentService) CreateComment(issueID uint64, content string, authorID uint64) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentEmpty
	}

	if _, err := s.issueRepo.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	comment := &models.Comment{
		Content:  content,
		IssueID:  issueID,
		AuthorID: authorID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListComments retrieves an issue's comments according to the list parameters.
func (s *CommentService) ListComments(issueID uint64, params query.Params) ([]models.Comment, error) {
	if _, err := s.issueRepo.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	comments, err := s.commentRepo.ListByIssue(issueID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GetComment retrieves a comment by ID.
func (s *CommentService) GetComment(id uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

// UpdateComment replaces a comment's content. Only the author may modify.
func (s *CommentService) UpdateComment(id uint64, content string, actorID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.AuthorID != actorID {
		return nil, ErrNotAuthor
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentEmpty
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment deletes a comment. Only the author may delete.
func (s *CommentService) DeleteComment(id, actorID uint64) error {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.AuthorID != actorID {
		return ErrNotAuthor
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
