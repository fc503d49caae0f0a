package repository

import (
	"errors"

	"gameforge/internal/domain"
	"gameforge/internal/models"

	"gorm.io/gorm"
)

var ErrUnknownContentType = errors.New("unknown content type")

// ContentDetails is the denormalized snapshot the moderation workflow needs
// about a reported piece of content, whatever its kind.
type ContentDetails struct {
	AuthorID    uint
	ContainerID uint // channel for posts, post for comments
	Body        string
}

// ContentRef is a tagged reference to a post or a comment. Each variant
// carries its own join logic, so handlers never branch on raw type strings.
type ContentRef interface {
	Kind() string
	RefID() uint
	details(tx *gorm.DB) (*ContentDetails, error)
	softDelete(tx *gorm.DB) error
}

type PostRef uint

func (p PostRef) Kind() string { return domain.ContentTypePost }
func (p PostRef) RefID() uint  { return uint(p) }

func (p PostRef) details(tx *gorm.DB) (*ContentDetails, error) {
	var post models.Post
	if err := tx.First(&post, uint(p)).Error; err != nil {
		return nil, err
	}
	return &ContentDetails{AuthorID: post.AuthorID, ContainerID: post.ChannelID, Body: post.Body}, nil
}

func (p PostRef) softDelete(tx *gorm.DB) error {
	return tx.Model(&models.Post{}).Where("id = ?", uint(p)).Update("deleted", true).Error
}

type CommentRef uint

func (c CommentRef) Kind() string { return domain.ContentTypeComment }
func (c CommentRef) RefID() uint  { return uint(c) }

func (c CommentRef) details(tx *gorm.DB) (*ContentDetails, error) {
	var comment models.Comment
	if err := tx.First(&comment, uint(c)).Error; err != nil {
		return nil, err
	}
	return &ContentDetails{AuthorID: comment.AuthorID, ContainerID: comment.PostID, Body: comment.Body}, nil
}

func (c CommentRef) softDelete(tx *gorm.DB) error {
	return tx.Model(&models.Comment{}).Where("id = ?", uint(c)).Update("deleted", true).Error
}

// ParseContentRef builds the right variant from a wire-level type string.
func ParseContentRef(contentType string, id uint) (ContentRef, error) {
	switch contentType {
	case domain.ContentTypePost:
		return PostRef(id), nil
	case domain.ContentTypeComment:
		return CommentRef(id), nil
	}
	return nil, ErrUnknownContentType
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Details(ref ContentRef) (*ContentDetails, error) {
	return ref.details(r.db)
}

func (r *ContentRepository) SoftDeleteTx(tx *gorm.DB, ref ContentRef) error {
	return ref.softDelete(tx)
}

// Channels / posts / comments CRUD used by the community surface.

func (r *ContentRepository) CreateChannel(ch *models.Channel) error {
	return r.db.Create(ch).Error
}

func (r *ContentRepository) ListChannels() ([]models.Channel, error) {
	var list []models.Channel
	err := r.db.Order("name").Find(&list).Error
	return list, err
}

func (r *ContentRepository) GetChannelBySlug(slug string) (*models.Channel, error) {
	var ch models.Channel
	if err := r.db.Where("slug = ?", slug).First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ContentRepository) CreatePost(p *models.Post) error {
	return r.db.Create(p).Error
}

func (r *ContentRepository) GetPost(id uint) (*models.Post, error) {
	var p models.Post
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPosts returns non-moderated posts in a channel, newest first.
func (r *ContentRepository) ListPosts(channelID uint, limit, offset int) ([]models.Post, error) {
	var list []models.Post
	err := r.db.Where("channel_id = ? AND deleted = ?", channelID, false).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ContentRepository) CreateComment(cm *models.Comment) error {
	return r.db.Create(cm).Error
}

func (r *ContentRepository) ListComments(postID uint, limit, offset int) ([]models.Comment, error) {
	var list []models.Comment
	err := r.db.Where("post_id = ? AND deleted = ?", postID, false).
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
