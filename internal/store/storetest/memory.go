// Package storetest provides an in-memory store.Store honouring the same
// unique constraints as the MongoDB indexes.
package storetest

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/store"
)

type Memory struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]models.User
	categories    map[primitive.ObjectID]models.Category
	subCategories map[primitive.ObjectID]models.SubCategory
	products      map[primitive.ObjectID]models.Product
	addresses     map[primitive.ObjectID]models.Address
	carts         map[primitive.ObjectID]models.Cart
	orders        map[primitive.ObjectID]models.Order
	orderSeq      map[primitive.ObjectID]int
	seq           int

	// FailAppendSubCategory makes Categories.AppendSubCategory fail with err.
	FailAppendSubCategory error
	// UpsertConflicts makes the next n ReplaceForOwner calls fail with
	// store.ErrDuplicate, as a racing upsert on the owner index would.
	UpsertConflicts int
}

func (m *Memory) upsertConflict() bool {
	if m.UpsertConflicts > 0 {
		m.UpsertConflicts--
		return true
	}
	return false
}

func New() *Memory {
	return &Memory{
		users:         map[primitive.ObjectID]models.User{},
		categories:    map[primitive.ObjectID]models.Category{},
		subCategories: map[primitive.ObjectID]models.SubCategory{},
		products:      map[primitive.ObjectID]models.Product{},
		addresses:     map[primitive.ObjectID]models.Address{},
		carts:         map[primitive.ObjectID]models.Cart{},
		orders:        map[primitive.ObjectID]models.Order{},
		orderSeq:      map[primitive.ObjectID]int{},
	}
}

// Store returns the collection views backed by m.
func (m *Memory) Store() store.Store {
	return store.Store{
		Users:         users{m},
		Categories:    categories{m},
		SubCategories: subCategories{m},
		Products:      products{m},
		Addresses:     addresses{m},
		Carts:         carts{m},
		Orders:        orders{m},
	}
}

// Count reports the number of documents in the named collection.
func (m *Memory) Count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch collection {
	case "users":
		return len(m.users)
	case "categories":
		return len(m.categories)
	case "subCategories":
		return len(m.subCategories)
	case "products":
		return len(m.products)
	case "addresses":
		return len(m.addresses)
	case "carts":
		return len(m.carts)
	case "orders":
		return len(m.orders)
	}
	return 0
}

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

func pick[T any](docs map[primitive.ObjectID]T, ids []primitive.ObjectID) []T {
	out := make([]T, 0, len(ids))
	seen := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if doc, ok := docs[id]; ok {
			out = append(out, doc)
		}
	}
	return out
}

/* users */

type users struct{ m *Memory }

func (r users) Insert(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, existing := range r.m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrDuplicate
		}
	}
	ensureID(&user.ID)
	r.m.users[user.ID] = *user
	return nil
}

func (r users) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	user, ok := r.m.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r users) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, user := range r.m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (r users) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return pick(r.m.users, ids), nil
}

func (r users) List(_ context.Context) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := make([]models.User, 0, len(r.m.users))
	for _, user := range r.m.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r users) Update(_ context.Context, id primitive.ObjectID, update store.UserUpdate) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	user, ok := r.m.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	if update.ImageURL != nil {
		user.ImageURL = *update.ImageURL
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}
	if update.IsSuperAdmin != nil {
		user.IsSuperAdmin = *update.IsSuperAdmin
	}
	user.UpdatedAt = time.Now().UTC()
	r.m.users[id] = user
	return user, nil
}

func (r users) Delete(_ context.Context, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.m.users, id)
	return nil
}

/* categories */

type categories struct{ m *Memory }

func cloneCategory(c models.Category) models.Category {
	c.SubCategories = slices.Clone(c.SubCategories)
	return c
}

func (r categories) Insert(_ context.Context, category *models.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, existing := range r.m.categories {
		if existing.Name == category.Name {
			return store.ErrDuplicate
		}
	}
	ensureID(&category.ID)
	r.m.categories[category.ID] = cloneCategory(*category)
	return nil
}

func (r categories) FindByID(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	category, ok := r.m.categories[id]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	return cloneCategory(category), nil
}

func (r categories) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return pick(r.m.categories, ids), nil
}

func (r categories) List(_ context.Context) ([]models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := make([]models.Category, 0, len(r.m.categories))
	for _, category := range r.m.categories {
		out = append(out, cloneCategory(category))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r categories) AppendSubCategory(_ context.Context, categoryID, subCategoryID primitive.ObjectID) (models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if r.m.FailAppendSubCategory != nil {
		return models.Category{}, r.m.FailAppendSubCategory
	}
	category, ok := r.m.categories[categoryID]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	category.SubCategories = append(slices.Clone(category.SubCategories), subCategoryID)
	r.m.categories[categoryID] = category
	return cloneCategory(category), nil
}

/* subcategories */

type subCategories struct{ m *Memory }

func (r subCategories) Insert(_ context.Context, sub *models.SubCategory) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, existing := range r.m.subCategories {
		if existing.Name == sub.Name {
			return store.ErrDuplicate
		}
	}
	ensureID(&sub.ID)
	r.m.subCategories[sub.ID] = *sub
	return nil
}

func (r subCategories) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.SubCategory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return pick(r.m.subCategories, ids), nil
}

/* products */

type products struct{ m *Memory }

func (r products) titleTaken(title string, except primitive.ObjectID) bool {
	for id, existing := range r.m.products {
		if id != except && existing.Title == title {
			return true
		}
	}
	return false
}

func (r products) Insert(_ context.Context, product *models.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if r.titleTaken(product.Title, primitive.NilObjectID) {
		return store.ErrDuplicate
	}
	ensureID(&product.ID)
	r.m.products[product.ID] = *product
	return nil
}

func (r products) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	product, ok := r.m.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return product, nil
}

func (r products) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return pick(r.m.products, ids), nil
}

func (r products) List(_ context.Context, filter store.ProductFilter) ([]models.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := []models.Product{}
	for _, product := range r.m.products {
		if !filter.CategoryID.IsZero() && product.CategoryObj != filter.CategoryID {
			continue
		}
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r products) Replace(_ context.Context, product models.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.products[product.ID]; !ok {
		return store.ErrNotFound
	}
	if r.titleTaken(product.Title, product.ID) {
		return store.ErrDuplicate
	}
	r.m.products[product.ID] = product
	return nil
}

func (r products) Delete(_ context.Context, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.m.products, id)
	return nil
}

/* addresses */

type addresses struct{ m *Memory }

func (r addresses) ReplaceForOwner(_ context.Context, address models.Address) (models.Address, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.upsertConflict() {
		return models.Address{}, store.ErrDuplicate
	}

	for id, existing := range r.m.addresses {
		if existing.UserObj == address.UserObj {
			address.ID = id
			break
		}
	}
	ensureID(&address.ID)
	r.m.addresses[address.ID] = address
	return address, nil
}

func (r addresses) FindByOwner(_ context.Context, owner primitive.ObjectID) (models.Address, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, address := range r.m.addresses {
		if address.UserObj == owner {
			return address, nil
		}
	}
	return models.Address{}, store.ErrNotFound
}

func (r addresses) FindByID(_ context.Context, id primitive.ObjectID) (models.Address, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	address, ok := r.m.addresses[id]
	if !ok {
		return models.Address{}, store.ErrNotFound
	}
	return address, nil
}

func (r addresses) Replace(_ context.Context, address models.Address) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.addresses[address.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range r.m.addresses {
		if id != address.ID && existing.UserObj == address.UserObj {
			return store.ErrDuplicate
		}
	}
	r.m.addresses[address.ID] = address
	return nil
}

func (r addresses) Delete(_ context.Context, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.addresses[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.m.addresses, id)
	return nil
}

/* carts */

type carts struct{ m *Memory }

func (r carts) ReplaceForOwner(_ context.Context, cart models.Cart) (models.Cart, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.upsertConflict() {
		return models.Cart{}, store.ErrDuplicate
	}

	for id, existing := range r.m.carts {
		if existing.UserObj == cart.UserObj {
			cart.ID = id
			break
		}
	}
	ensureID(&cart.ID)
	cart.Products = slices.Clone(cart.Products)
	r.m.carts[cart.ID] = cart
	return cart, nil
}

func (r carts) FindByOwner(_ context.Context, owner primitive.ObjectID) (models.Cart, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, cart := range r.m.carts {
		if cart.UserObj == owner {
			cart.Products = slices.Clone(cart.Products)
			return cart, nil
		}
	}
	return models.Cart{}, store.ErrNotFound
}

func (r carts) DeleteByOwner(_ context.Context, owner primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for id, cart := range r.m.carts {
		if cart.UserObj == owner {
			delete(r.m.carts, id)
			return nil
		}
	}
	return store.ErrNotFound
}

/* orders */

type orders struct{ m *Memory }

func (r orders) Insert(_ context.Context, order *models.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	ensureID(&order.ID)
	order.Products = slices.Clone(order.Products)
	r.m.seq++
	r.m.orderSeq[order.ID] = r.m.seq
	r.m.orders[order.ID] = *order
	return nil
}

func (r orders) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	order, ok := r.m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	return order, nil
}

func (r orders) List(_ context.Context, filter store.OrderFilter) ([]models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := []models.Order{}
	for _, order := range r.m.orders {
		if !filter.OrderBy.IsZero() && order.OrderBy != filter.OrderBy {
			continue
		}
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.m.orderSeq[out[i].ID] > r.m.orderSeq[out[j].ID]
	})
	return out, nil
}

func (r orders) SetStatus(_ context.Context, id primitive.ObjectID, status string) (models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	order, ok := r.m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	order.OrderStatus = status
	order.UpdatedAt = time.Now().UTC()
	r.m.orders[id] = order
	return order, nil
}

func (r orders) Delete(_ context.Context, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.m.orders, id)
	delete(r.m.orderSeq, id)
	return nil
}
