package server

import (
	"context"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Defaults applied at creation, matching the historical database schema.
const (
	DefaultProprietaire  = "J"
	DefaultStatutLecture = "lu"
	StatutALire          = "a_lire"
)

// CollectionFilter carries the optional listing filters of the
// collection endpoint. Zero values mean "no filtering".
type CollectionFilter struct {
	Query        string
	SearchBy     string
	Proprietaire string
	Statut       string
}

// LibraryServiceProvider exposes the catalogue operations. A record
// lives in exactly one of the two lists at any time; every per-id
// operation is constrained to the list it was addressed through and
// reports ErrBookNotFound for an id living in the other one.
type LibraryServiceProvider interface {
	Collection(ctx context.Context, filter CollectionFilter) ([]Book, CollectionStats, error)
	CollectionBook(ctx context.Context, id int) (Book, error)
	AddCollectionBook(ctx context.Context, book Book) (int, error)
	UpdateCollectionBook(ctx context.Context, id int, book Book) error
	DeleteCollectionBook(ctx context.Context, id int) (Book, error)

	Wishlist(ctx context.Context, query, searchBy string) ([]WishlistBook, WishlistStats, error)
	WishlistBook(ctx context.Context, id int) (Book, error)
	AddWishlistBook(ctx context.Context, book Book) (int, error)
	UpdateWishlistBook(ctx context.Context, id int, book Book) error
	DeleteWishlistBook(ctx context.Context, id int) (Book, error)
	MoveToCollection(ctx context.Context, id int) (Book, error)
}

type LibraryService struct {
	logger  *zap.Logger
	config  *Config
	storage BookStorage
}

func NewLibraryService(logger *zap.Logger, config *Config, storage BookStorage) LibraryServiceProvider {
	return &LibraryService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

// matchesSearch applies the free-text filter on the field selected by
// searchBy (titre unless auteur is asked for), case-insensitively.
func matchesSearch(book Book, query, searchBy string) bool {
	if query == "" {
		return true
	}
	field := book.Titre
	if searchBy == "auteur" {
		field = book.Auteur
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}

func sortByTitre(books []Book) {
	sort.Slice(books, func(i, j int) bool {
		return strings.ToLower(books[i].Titre) < strings.ToLower(books[j].Titre)
	})
}

// Collection returns the filtered collection records ordered by titre,
// along with stats computed over the whole collection (not the
// filtered subset).
func (ls *LibraryService) Collection(ctx context.Context, filter CollectionFilter) ([]Book, CollectionStats, error) {
	all, err := ls.storage.GetAll(ctx)
	if err != nil {
		return nil, CollectionStats{}, err
	}

	collection := []Book{}
	for _, book := range all {
		if book.EstWishlist != 0 {
			continue
		}
		collection = append(collection, book)
	}
	stats := computeCollectionStats(collection)

	books := []Book{}
	for _, book := range collection {
		if !matchesSearch(book, filter.Query, filter.SearchBy) {
			continue
		}
		if filter.Proprietaire != "" && book.Proprietaire != filter.Proprietaire {
			continue
		}
		if filter.Statut != "" && book.StatutLecture != filter.Statut {
			continue
		}
		books = append(books, book)
	}
	sortByTitre(books)
	return books, stats, nil
}

// Wishlist returns the filtered wishlist records ordered by titre,
// along with stats over the whole wishlist.
func (ls *LibraryService) Wishlist(ctx context.Context, query, searchBy string) ([]WishlistBook, WishlistStats, error) {
	all, err := ls.storage.GetAll(ctx)
	if err != nil {
		return nil, WishlistStats{}, err
	}

	wishlist := []Book{}
	for _, book := range all {
		if book.EstWishlist == 0 {
			continue
		}
		wishlist = append(wishlist, book)
	}
	stats := computeWishlistStats(wishlist)

	matched := []Book{}
	for _, book := range wishlist {
		if matchesSearch(book, query, searchBy) {
			matched = append(matched, book)
		}
	}
	sortByTitre(matched)

	books := []WishlistBook{}
	for _, book := range matched {
		books = append(books, WishlistBook{
			ID:           book.ID,
			Titre:        book.Titre,
			Auteur:       book.Auteur,
			Proprietaire: book.Proprietaire,
		})
	}
	return books, stats, nil
}

// getFromList fetches a record and checks it belongs to the expected list.
func (ls *LibraryService) getFromList(ctx context.Context, id int, wishlist bool) (Book, error) {
	book, err := ls.storage.GetOne(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if (book.EstWishlist != 0) != wishlist {
		return Book{}, ErrBookNotFound
	}
	return book, nil
}

func (ls *LibraryService) CollectionBook(ctx context.Context, id int) (Book, error) {
	return ls.getFromList(ctx, id, false)
}

func (ls *LibraryService) WishlistBook(ctx context.Context, id int) (Book, error) {
	return ls.getFromList(ctx, id, true)
}

func (ls *LibraryService) AddCollectionBook(ctx context.Context, book Book) (int, error) {
	book.EstWishlist = 0
	if book.Proprietaire == "" {
		book.Proprietaire = DefaultProprietaire
	}
	if book.StatutLecture == "" {
		book.StatutLecture = DefaultStatutLecture
	}
	return ls.storage.Add(ctx, book)
}

// AddWishlistBook stores a desired-but-unowned record. Rating and
// reading status do not apply to the wishlist.
func (ls *LibraryService) AddWishlistBook(ctx context.Context, book Book) (int, error) {
	book.EstWishlist = 1
	book.Note = 0
	book.StatutLecture = ""
	if book.Proprietaire == "" {
		book.Proprietaire = DefaultProprietaire
	}
	return ls.storage.Add(ctx, book)
}

func (ls *LibraryService) UpdateCollectionBook(ctx context.Context, id int, book Book) error {
	existing, err := ls.getFromList(ctx, id, false)
	if err != nil {
		return err
	}
	existing.Titre = book.Titre
	existing.Auteur = book.Auteur
	existing.Note = book.Note
	existing.Proprietaire = book.Proprietaire
	existing.StatutLecture = book.StatutLecture
	return ls.storage.Update(ctx, id, existing)
}

// UpdateWishlistBook touches titre, auteur and proprietaire only.
func (ls *LibraryService) UpdateWishlistBook(ctx context.Context, id int, book Book) error {
	existing, err := ls.getFromList(ctx, id, true)
	if err != nil {
		return err
	}
	existing.Titre = book.Titre
	existing.Auteur = book.Auteur
	existing.Proprietaire = book.Proprietaire
	return ls.storage.Update(ctx, id, existing)
}

func (ls *LibraryService) DeleteCollectionBook(ctx context.Context, id int) (Book, error) {
	book, err := ls.getFromList(ctx, id, false)
	if err != nil {
		return Book{}, err
	}
	return book, ls.storage.Delete(ctx, id)
}

func (ls *LibraryService) DeleteWishlistBook(ctx context.Context, id int) (Book, error) {
	book, err := ls.getFromList(ctx, id, true)
	if err != nil {
		return Book{}, err
	}
	return book, ls.storage.Delete(ctx, id)
}

// MoveToCollection transfers a wishlist record into the collection.
// The record keeps its id and lands with the "to read" status.
func (ls *LibraryService) MoveToCollection(ctx context.Context, id int) (Book, error) {
	book, err := ls.getFromList(ctx, id, true)
	if err != nil {
		return Book{}, err
	}
	book.EstWishlist = 0
	book.StatutLecture = StatutALire
	if err = ls.storage.Update(ctx, id, book); err != nil {
		return Book{}, err
	}
	return book, nil
}

func computeCollectionStats(collection []Book) CollectionStats {
	stats := CollectionStats{Total: len(collection)}
	rated, sum := 0, 0
	for _, book := range collection {
		switch book.Proprietaire {
		case "J":
			stats.MesLivres++
		case "K":
			stats.LivresK++
		}
		switch book.StatutLecture {
		case StatutALire:
			stats.ALire++
		case "en_cours":
			stats.EnCours++
		case "lu":
			stats.Lus++
		}
		if book.Note > 0 {
			rated++
			sum += book.Note
		}
	}
	if rated > 0 {
		avg := math.Round(float64(sum)/float64(rated)*10) / 10
		stats.NoteMoyenne = &avg
	}
	return stats
}

func computeWishlistStats(wishlist []Book) WishlistStats {
	stats := WishlistStats{Total: len(wishlist)}
	for _, book := range wishlist {
		switch book.Proprietaire {
		case "J":
			stats.MesSouhaits++
		case "K":
			stats.SouhaitsK++
		}
	}
	return stats
}
