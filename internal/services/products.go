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

type ProductService struct {
	st        store.Store
	exp       expander
	cache     cache.Cache
	adminOnly bool
	now       func() time.Time
}

type ProductInput struct {
	Title          string
	Description    string
	ImageURL       string
	Brand          string
	Price          float64
	Quantity       int
	CategoryObj    primitive.ObjectID
	SubCategoryObj primitive.ObjectID
}

// checkRefs verifies the category and subcategory a product points at exist.
func (s *ProductService) checkRefs(ctx context.Context, in ProductInput) error {
	if _, err := s.st.Categories.FindByID(ctx, in.CategoryObj); err != nil {
		return notFoundOr(err, "Category is not Found!")
	}
	subs, err := s.st.SubCategories.FindByIDs(ctx, []primitive.ObjectID{in.SubCategoryObj})
	if err != nil {
		return apperr.Internalf(err)
	}
	if len(subs) == 0 {
		return apperr.Missing("Sub Category is not Found!")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, actor models.User, in ProductInput) (models.Product, error) {
	if s.adminOnly {
		if err := requireAdmin(actor); err != nil {
			return models.Product{}, err
		}
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return models.Product{}, err
	}

	now := s.now()
	product := models.Product{
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		Brand:          in.Brand,
		Price:          in.Price,
		Quantity:       in.Quantity,
		CategoryObj:    in.CategoryObj,
		SubCategoryObj: in.SubCategoryObj,
		UserObj:        actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.st.Products.Insert(ctx, &product); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Product{}, apperr.Duplicate("The Product is already exists!")
		}
		return models.Product{}, apperr.Internalf(err)
	}

	invalidate(ctx, s.cache, cache.ProductsPrefix)
	logrus.WithFields(logrus.Fields{"area": "PRODUCT", "product_id": product.ID.Hex(), "user_id": actor.ID.Hex()}).Info("product created")
	return product, nil
}

// Update overwrites every mutable field and stamps the actor as owner.
func (s *ProductService) Update(ctx context.Context, actor models.User, id primitive.ObjectID, in ProductInput) (models.Product, error) {
	existing, err := s.st.Products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, notFoundOr(err, "The Product is not exists!")
	}
	if err := requireOwnerOrAdmin(actor, existing.UserObj, "product"); err != nil {
		return models.Product{}, err
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return models.Product{}, err
	}

	updated := existing
	updated.Title = strings.TrimSpace(in.Title)
	updated.Description = in.Description
	updated.ImageURL = in.ImageURL
	updated.Brand = in.Brand
	updated.Price = in.Price
	updated.Quantity = in.Quantity
	updated.CategoryObj = in.CategoryObj
	updated.SubCategoryObj = in.SubCategoryObj
	updated.UserObj = actor.ID
	updated.UpdatedAt = s.now()

	if err := s.st.Products.Replace(ctx, updated); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Product{}, apperr.Duplicate("The Product is already exists!")
		}
		return models.Product{}, notFoundOr(err, "The Product is not exists!")
	}

	invalidate(ctx, s.cache, cache.ProductsPrefix)
	return updated, nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (models.ProductDetail, error) {
	product, err := s.st.Products.FindByID(ctx, id)
	if err != nil {
		return models.ProductDetail{}, notFoundOr(err, "Product is not Found!")
	}
	detail, err := s.exp.productDetail(ctx, product)
	if err != nil {
		return models.ProductDetail{}, apperr.Internalf(err)
	}
	return detail, nil
}

// List returns every product, or only those in categoryID when it is set.
func (s *ProductService) List(ctx context.Context, categoryID primitive.ObjectID) ([]models.ProductDetail, error) {
	key := cache.ProductsKey("")
	if !categoryID.IsZero() {
		key = cache.ProductsKey(categoryID.Hex())
	}

	var cached []models.ProductDetail
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		logrus.WithField("area", "CACHE").WithError(err).Warn("product cache read failed")
	}

	products, err := s.st.Products.List(ctx, store.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return nil, apperr.Internalf(err)
	}
	details, err := s.exp.productDetails(ctx, products)
	if err != nil {
		return nil, apperr.Internalf(err)
	}

	if err := s.cache.Set(ctx, key, details); err != nil {
		logrus.WithField("area", "CACHE").WithError(err).Warn("product cache write failed")
	}
	return details, nil
}

// Delete returns the expanded product as it was before removal.
func (s *ProductService) Delete(ctx context.Context, actor models.User, id primitive.ObjectID) (models.ProductDetail, error) {
	product, err := s.st.Products.FindByID(ctx, id)
	if err != nil {
		return models.ProductDetail{}, notFoundOr(err, "Product is not Found!")
	}
	if err := requireOwnerOrAdmin(actor, product.UserObj, "product"); err != nil {
		return models.ProductDetail{}, err
	}
	detail, err := s.exp.productDetail(ctx, product)
	if err != nil {
		return models.ProductDetail{}, apperr.Internalf(err)
	}

	if err := s.st.Products.Delete(ctx, id); err != nil {
		return models.ProductDetail{}, notFoundOr(err, "Product is not Found!")
	}

	invalidate(ctx, s.cache, cache.ProductsPrefix)
	logrus.WithFields(logrus.Fields{"area": "PRODUCT", "product_id": id.Hex(), "user_id": actor.ID.Hex()}).Infof("product %q deleted", detail.Title)
	return detail, nil
}
