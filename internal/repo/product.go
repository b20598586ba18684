package repo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/mvolkova/kids_shop/internal/models"
)

// ProductFilter carries the recognized catalog query options. Zero
// values mean "no filter"; everything it emits is parameter-bound.
type ProductFilter struct {
	Category string
	AgeGroup string
	Query    string
	Sort     string
}

// Where returns the AND-joined condition fragments and their bound
// arguments. Filter values never appear in the clause text itself.
func (f ProductFilter) Where() (conds []string, args []any) {
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.AgeGroup != "" {
		conds = append(conds, "age_group = ?")
		args = append(args, f.AgeGroup)
	}
	if f.Query != "" {
		conds = append(conds, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		needle := "%" + strings.ToLower(f.Query) + "%"
		args = append(args, needle, needle)
	}
	return conds, args
}

// Order maps the sort option onto a fixed clause. Unknown values fall
// back to newest-by-id; the route stays forgiving to old callers.
func (f ProductFilter) Order() string {
	switch f.Sort {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	case "newest":
		return "created_at DESC"
	default:
		return "id DESC"
	}
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if conds, args := f.Where(); len(conds) > 0 {
		q = q.Where(strings.Join(conds, " AND "), args...)
	}

	items := make([]models.Product, 0)
	if err := q.Order(f.Order()).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ProductByIDOrSlug resolves a path segment that may be either the
// numeric id or the slug.
func (r *GormRepo) ProductByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Product, error) {
	var product models.Product
	if id, err := strconv.Atoi(idOrSlug); err == nil {
		if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
			return nil, err
		}
		return &product, nil
	}
	if err := r.DB.WithContext(ctx).Where("slug = ?", idOrSlug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	var existing models.Product
	err := r.DB.WithContext(ctx).Where("slug = ?", p.Slug).First(&existing).Error
	if err == nil {
		return ErrSlugTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, apply func(*models.Product) error) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	if err := apply(&product); err != nil {
		return nil, err
	}
	taken, err := r.slugHeldByOther(ctx, product.Slug, product.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}
	if err := r.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// slugHeldByOther reports whether a different product already owns
// the slug; keeping one's own slug on update is not a conflict.
func (r *GormRepo) slugHeldByOther(ctx context.Context, slug string, id uint) (bool, error) {
	var other models.Product
	err := r.DB.WithContext(ctx).Where("slug = ? AND id <> ?", slug, id).First(&other).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ProductBySlugOrCreate(ctx context.Context, p *models.Product) (created bool, err error) {
	tx := r.DB.WithContext(ctx).Where("slug = ?", p.Slug).FirstOrCreate(p)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
