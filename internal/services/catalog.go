package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/store"
)

type CatalogService struct {
	st        store.Store
	exp       expander
	cache     cache.Cache
	adminOnly bool
	now       func() time.Time
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor models.User, name, description string) (models.Category, error) {
	if s.adminOnly {
		if err := requireAdmin(actor); err != nil {
			return models.Category{}, err
		}
	}

	now := s.now()
	category := models.Category{
		Name:          strings.TrimSpace(name),
		Description:   description,
		SubCategories: []primitive.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.st.Categories.Insert(ctx, &category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Category{}, apperr.Duplicate("This Category already exists")
		}
		return models.Category{}, apperr.Internalf(err)
	}

	invalidate(ctx, s.cache, cache.CategoriesKey)
	return category, nil
}

// CreateSubCategory inserts the subcategory and then appends it to the
// parent. If the append fails the subcategory stays orphaned.
func (s *CatalogService) CreateSubCategory(ctx context.Context, actor models.User, categoryID primitive.ObjectID, name, description string) (models.CategoryDetail, error) {
	if s.adminOnly {
		if err := requireAdmin(actor); err != nil {
			return models.CategoryDetail{}, err
		}
	}

	if _, err := s.st.Categories.FindByID(ctx, categoryID); err != nil {
		return models.CategoryDetail{}, notFoundOr(err, "Category is not Found!")
	}

	sub := models.SubCategory{Name: strings.TrimSpace(name), Description: description}
	if err := s.st.SubCategories.Insert(ctx, &sub); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.CategoryDetail{}, apperr.Duplicate("Sub Category is already Exists")
		}
		return models.CategoryDetail{}, apperr.Internalf(err)
	}

	parent, err := s.st.Categories.AppendSubCategory(ctx, categoryID, sub.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"area":           "CATEGORY",
			"category_id":    categoryID.Hex(),
			"subcategory_id": sub.ID.Hex(),
		}).WithError(err).Error("subcategory inserted but parent update failed")
		return models.CategoryDetail{}, notFoundOr(err, "Category is not Found!")
	}
	invalidate(ctx, s.cache, cache.CategoriesKey)
	// Product listings embed the category with its subcategory ids.
	invalidate(ctx, s.cache, cache.ProductsPrefix)

	details, err := s.exp.categoryDetails(ctx, []models.Category{parent})
	if err != nil {
		return models.CategoryDetail{}, apperr.Internalf(err)
	}
	return details[0], nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.CategoryDetail, error) {
	var cached []models.CategoryDetail
	if found, err := s.cache.Get(ctx, cache.CategoriesKey, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		logrus.WithField("area", "CACHE").WithError(err).Warn("category cache read failed")
	}

	categories, err := s.st.Categories.List(ctx)
	if err != nil {
		return nil, apperr.Internalf(err)
	}
	details, err := s.exp.categoryDetails(ctx, categories)
	if err != nil {
		return nil, apperr.Internalf(err)
	}

	if err := s.cache.Set(ctx, cache.CategoriesKey, details); err != nil {
		logrus.WithField("area", "CACHE").WithError(err).Warn("category cache write failed")
	}
	return details, nil
}
