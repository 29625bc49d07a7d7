package googlebooks

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const pageSize = 40

// the fixed query list the catalog is built from
var defaultQueries = []string{
	"subject:fiction bestseller",
	"subject:science fiction",
	"subject:fantasy",
	"subject:mystery",
	"subject:thriller",
	"subject:horror",
	"subject:romance",
	"subject:historical fiction",
	"subject:adventure",
	"subject:classics",
	"subject:literary fiction",
	"subject:short stories",
	"subject:young adult",
	"subject:dystopian",
	"subject:biography",
	"subject:autobiography",
	"subject:history",
	"subject:science",
	"subject:philosophy",
	"subject:psychology",
	"subject:business",
	"subject:self-help",
	"subject:travel",
	"subject:cooking",
	"subject:art",
	"subject:health",
	"subject:politics",
	"subject:computers",
	"inauthor:stephen king",
	"inauthor:j.k. rowling",
	"inauthor:dan brown",
	"inauthor:james patterson",
	"inauthor:john grisham",
	"inauthor:nora roberts",
	"inauthor:agatha christie",
	"inauthor:george r.r. martin",
	"inauthor:haruki murakami",
	"inauthor:neil gaiman",
	"pulitzer prize winner",
	"booker prize winner",
	"hugo award",
	"national book award",
	"newbery medal",
}

// BookRecord is the normalized row shape written to books.json and read back
// by the population step.
type BookRecord struct {
	GoogleBooksID   string            `json:"google_books_id"`
	Title           string            `json:"title"`
	Author          string            `json:"author"`
	PublicationYear *int              `json:"publication_year"`
	Genre           string            `json:"genre"`
	Summary         string            `json:"summary"`
	PageCount       int               `json:"page_count"`
	ImageLinks      map[string]string `json:"image_links"`
}

// FetchBooks walks the fixed query list, paging each query until the API
// returns a short page or an error. Dedupe key is title|authors. Errors abort
// only the current query's loop.
func FetchBooks(ctx context.Context, client *Client, logger *logrus.Logger) []BookRecord {
	var all []BookRecord
	seen := make(map[string]struct{})

	for _, query := range defaultQueries {
		for startIndex := 0; startIndex < 200; startIndex += pageSize {
			resp, err := client.Volumes(ctx, query, startIndex, pageSize)
			if err != nil {
				logger.WithError(err).WithField("query", query).Warn("query aborted")
				break
			}
			if len(resp.Items) == 0 {
				break
			}

			for _, item := range resp.Items {
				info := item.VolumeInfo
				if info.Title == "" || len(info.Authors) == 0 {
					continue
				}

				key := info.Title + "|" + strings.Join(info.Authors, ",")
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				all = append(all, normalizeVolume(item))
			}

			logger.WithFields(logrus.Fields{
				"query":       query,
				"start_index": startIndex,
				"items":       len(resp.Items),
			}).Info("fetched books page")

			if len(resp.Items) < pageSize {
				break
			}
		}
	}

	logger.WithField("total", len(all)).Info("unique books collected")
	return all
}

func normalizeVolume(item VolumeItem) BookRecord {
	info := item.VolumeInfo

	var year *int
	if len(info.PublishedDate) >= 4 {
		if y, err := strconv.Atoi(info.PublishedDate[:4]); err == nil {
			year = &y
		}
	}

	genre := "Fiction"
	if len(info.Categories) > 0 {
		genre = strings.Join(info.Categories, ", ")
	}

	summary := info.Description
	if summary == "" {
		summary = "No description available."
	}

	return BookRecord{
		GoogleBooksID:   item.ID,
		Title:           info.Title,
		Author:          strings.Join(info.Authors, ", "),
		PublicationYear: year,
		Genre:           genre,
		Summary:         summary,
		PageCount:       info.PageCount,
		ImageLinks:      info.ImageLinks,
	}
}

// WriteJSON dumps the collected records for the population step.
func WriteJSON(path string, records []BookRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
