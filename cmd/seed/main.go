package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"sellerbooks/internal/book"
	"sellerbooks/internal/config"
	"sellerbooks/internal/seller"
	"sellerbooks/internal/storage"

	"github.com/gammazero/workerpool"
	"github.com/pkg/errors"
)

const seedPassword = "Seed-Passw0rd!"

var (
	titleWords = []string{"Silent", "Northern", "Paper", "Glass", "River", "Hidden", "Last", "Golden", "Winter", "Open"}
	nouns      = []string{"Harbor", "Garden", "Circuit", "Letters", "Orchard", "Engine", "Atlas", "Lantern"}
	firstNames = []string{"Ada", "Noor", "Kenji", "Lena", "Tomas", "Imani", "Rafael", "Mei"}
	lastNames  = []string{"Okafor", "Larsen", "Sato", "Haddad", "Novak", "Moreau", "Silva", "Chen"}
)

func main() {
	sellers := flag.Int("sellers", 10, "number of sellers to create")
	booksPer := flag.Int("books", 20, "number of books per seller")
	workers := flag.Int("workers", 8, "concurrent inserts")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	bookService := book.NewService(store.Books)
	sellerService := seller.NewService(store.Sellers, bookService)

	start := time.Now()
	ids := seedSellers(ctx, logger, sellerService, *sellers, *workers)
	created := seedBooks(ctx, logger, bookService, ids, *booksPer, *workers)

	logger.Info("seed complete",
		slog.Int("sellers", len(ids)),
		slog.Int64("books", created),
		slog.Duration("took", time.Since(start)),
	)
}

// seedSellers registers n sellers and returns their ids. Sellers left by an
// earlier run are looked up by e-mail, so a second run adds books to them.
func seedSellers(ctx context.Context, logger *slog.Logger, svc *seller.Service, n, workers int) []int64 {
	var (
		mu       sync.Mutex
		ids      []int64
		existing = map[string]bool{}
	)
	wp := workerpool.New(workers)
	for i := 0; i < n; i++ {
		i := i
		wp.Submit(func() {
			email := fmt.Sprintf("seller%d@example.com", i+1)
			s, err := svc.Register(ctx, seller.CreateInput{
				FirstName: firstNames[i%len(firstNames)],
				LastName:  lastNames[(i/len(firstNames))%len(lastNames)],
				Email:     email,
				Password:  seedPassword,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, seller.ErrAlreadyExists):
				existing[email] = true
			case err != nil:
				logger.Warn("seller insert failed", slog.String("e_mail", email), slog.Any("error", err))
			default:
				ids = append(ids, s.ID)
			}
		})
	}
	wp.StopWait()

	if len(existing) == 0 {
		return ids
	}
	all, err := svc.List(ctx)
	if err != nil {
		logger.Warn("list existing sellers failed", slog.Any("error", err))
		return ids
	}
	for _, s := range all {
		if existing[s.Email] {
			ids = append(ids, s.ID)
		}
	}
	logger.Info("reusing existing sellers", slog.Int("count", len(existing)))
	return ids
}

func seedBooks(ctx context.Context, logger *slog.Logger, svc *book.Service, sellerIDs []int64, perSeller, workers int) int64 {
	var created atomic.Int64
	wp := workerpool.New(workers)
	for _, sellerID := range sellerIDs {
		for j := 0; j < perSeller; j++ {
			in := book.Input{
				Title:    fmt.Sprintf("%s %s", titleWords[rand.Intn(len(titleWords))], nouns[rand.Intn(len(nouns))]),
				Author:   fmt.Sprintf("%s %s", firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))]),
				Year:     book.MinYear + rand.Intn(6),
				Pages:    80 + rand.Intn(700),
				SellerID: sellerID,
			}
			wp.Submit(func() {
				if _, err := svc.Create(ctx, in); err != nil {
					logger.Warn("book insert failed", slog.Int64("seller_id", in.SellerID), slog.Any("error", err))
					return
				}
				created.Add(1)
			})
		}
	}
	wp.StopWait()
	return created.Load()
}
