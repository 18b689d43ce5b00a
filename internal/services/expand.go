package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/store"
)

// expander resolves reference fields at read time: collect the ids, fetch
// each referenced collection once with $in, then map the results back.
// References that no longer resolve come back as nil.
type expander struct {
	st store.Store
}

func collectIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (e expander) users(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	found, err := e.st.Users.FindByIDs(ctx, collectIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.User, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	return byID, nil
}

func (e expander) products(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	found, err := e.st.Products.FindByIDs(ctx, collectIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	return byID, nil
}

func (e expander) categoryDetails(ctx context.Context, categories []models.Category) ([]models.CategoryDetail, error) {
	var refs []primitive.ObjectID
	for _, category := range categories {
		refs = append(refs, category.SubCategories...)
	}
	subs, err := e.st.SubCategories.FindByIDs(ctx, collectIDs(refs))
	if err != nil {
		return nil, err
	}
	subByID := make(map[primitive.ObjectID]models.SubCategory, len(subs))
	for _, sub := range subs {
		subByID[sub.ID] = sub
	}

	out := make([]models.CategoryDetail, 0, len(categories))
	for _, category := range categories {
		detail := models.CategoryDetail{
			ID:            category.ID,
			Name:          category.Name,
			Description:   category.Description,
			SubCategories: []models.SubCategory{},
			CreatedAt:     category.CreatedAt,
			UpdatedAt:     category.UpdatedAt,
		}
		// Subcategories keep the parent's order; dangling ones are skipped.
		for _, ref := range category.SubCategories {
			if sub, ok := subByID[ref]; ok {
				detail.SubCategories = append(detail.SubCategories, sub)
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

func (e expander) productDetails(ctx context.Context, products []models.Product) ([]models.ProductDetail, error) {
	var userIDs, categoryIDs, subIDs []primitive.ObjectID
	for _, p := range products {
		userIDs = append(userIDs, p.UserObj)
		categoryIDs = append(categoryIDs, p.CategoryObj)
		subIDs = append(subIDs, p.SubCategoryObj)
	}

	users, err := e.users(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	categories, err := e.st.Categories.FindByIDs(ctx, collectIDs(categoryIDs))
	if err != nil {
		return nil, err
	}
	subs, err := e.st.SubCategories.FindByIDs(ctx, collectIDs(subIDs))
	if err != nil {
		return nil, err
	}

	categoryByID := make(map[primitive.ObjectID]*models.Category, len(categories))
	for i := range categories {
		categoryByID[categories[i].ID] = &categories[i]
	}
	subByID := make(map[primitive.ObjectID]*models.SubCategory, len(subs))
	for i := range subs {
		subByID[subs[i].ID] = &subs[i]
	}

	out := make([]models.ProductDetail, 0, len(products))
	for _, p := range products {
		out = append(out, models.ProductDetail{
			ID:             p.ID,
			Title:          p.Title,
			Description:    p.Description,
			ImageURL:       p.ImageURL,
			Brand:          p.Brand,
			Price:          p.Price,
			Quantity:       p.Quantity,
			CategoryObj:    categoryByID[p.CategoryObj],
			SubCategoryObj: subByID[p.SubCategoryObj],
			UserObj:        users[p.UserObj],
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		})
	}
	return out, nil
}

func (e expander) productDetail(ctx context.Context, product models.Product) (models.ProductDetail, error) {
	details, err := e.productDetails(ctx, []models.Product{product})
	if err != nil {
		return models.ProductDetail{}, err
	}
	return details[0], nil
}

func lineItemDetails(items []models.LineItem, products map[primitive.ObjectID]*models.Product) []models.LineItemDetail {
	out := make([]models.LineItemDetail, 0, len(items))
	for _, item := range items {
		out = append(out, models.LineItemDetail{
			Product: products[item.Product],
			Count:   item.Count,
			Price:   item.Price,
		})
	}
	return out
}

func (e expander) cartDetail(ctx context.Context, cart models.Cart) (models.CartDetail, error) {
	var productIDs []primitive.ObjectID
	for _, item := range cart.Products {
		productIDs = append(productIDs, item.Product)
	}
	products, err := e.products(ctx, productIDs)
	if err != nil {
		return models.CartDetail{}, err
	}
	users, err := e.users(ctx, []primitive.ObjectID{cart.UserObj})
	if err != nil {
		return models.CartDetail{}, err
	}

	return models.CartDetail{
		ID:         cart.ID,
		Products:   lineItemDetails(cart.Products, products),
		Total:      cart.Total,
		Tax:        cart.Tax,
		GrandTotal: cart.GrandTotal,
		UserObj:    users[cart.UserObj],
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}, nil
}

// orderDetails expands line-item products and the orderBy reference.
func (e expander) orderDetails(ctx context.Context, orders []models.Order) ([]models.OrderDetail, error) {
	var productIDs, authorIDs []primitive.ObjectID
	for _, order := range orders {
		for _, item := range order.Products {
			productIDs = append(productIDs, item.Product)
		}
		authorIDs = append(authorIDs, order.OrderBy)
	}

	products, err := e.products(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	authors, err := e.users(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.OrderDetail, 0, len(orders))
	for _, order := range orders {
		out = append(out, models.OrderDetail{
			ID:          order.ID,
			Products:    lineItemDetails(order.Products, products),
			Total:       order.Total,
			Tax:         order.Tax,
			GrandTotal:  order.GrandTotal,
			PaymentType: order.PaymentType,
			OrderStatus: order.OrderStatus,
			OrderBy:     authors[order.OrderBy],
			CreatedAt:   order.CreatedAt,
			UpdatedAt:   order.UpdatedAt,
		})
	}
	return out, nil
}

// missingProducts returns the line-item product ids that do not exist.
func (e expander) missingProducts(ctx context.Context, items []models.LineItem) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, item := range items {
		ids = append(ids, item.Product)
	}
	found, err := e.products(ctx, ids)
	if err != nil {
		return nil, err
	}
	var missing []primitive.ObjectID
	for _, id := range ids {
		if id.IsZero() {
			missing = append(missing, id)
			break
		}
	}
	for _, id := range collectIDs(ids) {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
