package store

import (
	"context"
	"fmt"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityPost = "post"

// SortField names a column posts can be ordered by.
type SortField string

const (
	SortID      SortField = "id"
	SortCreated SortField = "created"
	SortUpdated SortField = "updated"
	SortTitle   SortField = "title"
)

type Sort struct {
	Field SortField
	Desc  bool
}

// DefaultPostOrder is oldest first, ties broken by title.
var DefaultPostOrder = []Sort{{Field: SortCreated}, {Field: SortTitle}}

// ListOptions filters and orders ListPosts. Zero values mean no filter, default
// order and no limit.
type ListOptions struct {
	UserID        *uint
	CategoryID    *uint
	SubcategoryID *uint
	TagID         *uint
	OrderBy       []Sort
	Limit         int
	Offset        int
}

func (o ListOptions) orderColumns() ([]clause.OrderByColumn, error) {
	order := o.OrderBy
	if len(order) == 0 {
		order = DefaultPostOrder
	}

	cols := make([]clause.OrderByColumn, 0, len(order)+1)
	seenID := false
	for _, s := range order {
		switch s.Field {
		case SortID, SortCreated, SortUpdated, SortTitle:
		default:
			return nil, &ValidationError{Entity: entityPost, Field: "order", Message: fmt.Sprintf("cannot sort by %q", s.Field)}
		}
		if s.Field == SortID {
			seenID = true
		}
		cols = append(cols, clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: string(s.Field)},
			Desc:   s.Desc,
		})
	}
	// id keeps pages stable when every requested column ties.
	if !seenID {
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: string(SortID)}})
	}
	return cols, nil
}

// CreatePost inserts p on behalf of its author. The author and image must exist;
// category and subcategory are optional but must exist when set. Tags are linked
// by ID and must all exist.
func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	now := s.timestamp()
	row := models.Post{
		UserID:        p.UserID,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		Title:         p.Title,
		Body:          p.Body,
		Created:       now,
		Updated:       now,
		ImageID:       p.ImageID,
	}
	if err := check(entityPost, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := postRefs(tx, &row); err != nil {
			return err
		}
		tags, err := resolveTags(tx, tagIDs(p.Tags))
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&row).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		row.Tags = tags
		return nil
	})
	if err != nil {
		return translate(entityPost, nil, err)
	}
	*p = row
	return nil
}

func postRefs(tx *gorm.DB, p *models.Post) error {
	if err := requireRef(tx, &models.User{}, entityPost, "user_id", p.UserID); err != nil {
		return err
	}
	if err := requireRef(tx, &models.Image{}, entityPost, "image_id", p.ImageID); err != nil {
		return err
	}
	if err := optionalRef(tx, &models.Category{}, entityPost, "category_id", p.CategoryID); err != nil {
		return err
	}
	return optionalRef(tx, &models.Subcategory{}, entityPost, "subcategory_id", p.SubcategoryID)
}

func tagIDs(tags []models.Tag) []uint {
	out := make([]uint, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}

// resolveTags loads the tags with the given ids, failing on the first one missing.
func resolveTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, &ReferentialIntegrityError{Entity: entityPost, Field: "tags", ID: id}
		}
	}
	return tags, nil
}

// GetPost loads a post with its author, category, subcategory, tags and image.
func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Subcategory").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.title") }).
		Preload("Image").
		Take(&p, id).Error
	if err != nil {
		return nil, translate(entityPost, id, err)
	}
	return &p, nil
}

// ListPosts returns posts ordered by opts.OrderBy, or DefaultPostOrder.
func (s *Store) ListPosts(ctx context.Context, opts ListOptions) ([]models.Post, error) {
	order, err := opts.orderColumns()
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&models.Post{}).Preload("Category").Preload("Subcategory").Preload("Tags")
	if opts.UserID != nil {
		q = q.Where("posts.user_id = ?", *opts.UserID)
	}
	if opts.CategoryID != nil {
		q = q.Where("posts.category_id = ?", *opts.CategoryID)
	}
	if opts.SubcategoryID != nil {
		q = q.Where("posts.subcategory_id = ?", *opts.SubcategoryID)
	}
	if opts.TagID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = posts.id AND pt.tag_id = ?)", *opts.TagID)
	}
	for _, col := range order {
		q = q.Order(col)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, translate(entityPost, nil, err)
	}
	return posts, nil
}

// UpdatePost writes title, body, category, subcategory and image of p and refreshes
// Updated. The author, Created and tags are left as they are; see SetPostTags.
func (s *Store) UpdatePost(ctx context.Context, p *models.Post) error {
	var current models.Post
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, p.ID); err != nil {
			return err
		}
		current.Title = p.Title
		current.Body = p.Body
		current.CategoryID = p.CategoryID
		current.SubcategoryID = p.SubcategoryID
		current.ImageID = p.ImageID
		current.Updated = s.touch(current.Created)
		if err := check(entityPost, &current); err != nil {
			return err
		}
		if err := postRefs(tx, &current); err != nil {
			return err
		}
		return tx.Model(&current).
			Select("title", "body", "category_id", "subcategory_id", "image_id", "updated").
			Updates(&current).Error
	})
	if err != nil {
		return translate(entityPost, p.ID, err)
	}
	*p = current
	return nil
}

// SetPostTags replaces the tags of a post and refreshes its Updated.
func (s *Store) SetPostTags(ctx context.Context, postID uint, tagIDs ...uint) (*models.Post, error) {
	var current models.Post
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, postID); err != nil {
			return err
		}
		tags, err := resolveTags(tx, tagIDs)
		if err != nil {
			return err
		}
		assoc := tx.Model(&current).Association("Tags")
		if len(tags) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(tags)
		}
		if err != nil {
			return err
		}
		current.Tags = tags
		current.Updated = s.touch(current.Created)
		return tx.Model(&current).Update("updated", current.Updated).Error
	})
	if err != nil {
		return nil, translate(entityPost, postID, err)
	}
	return &current, nil
}

// DeletePost removes the post with its comments, ratings and tag links.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var p models.Post
		if err := lockForUpdate(tx, &p, id); err != nil {
			return err
		}
		return deletePost(tx, id)
	})
	return translate(entityPost, id, err)
}

func deletePost(tx *gorm.DB, id uint) error {
	if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", id).Delete(&models.PostRating{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Post{ID: id}).Association("Tags").Clear(); err != nil {
		return err
	}

	res := tx.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
