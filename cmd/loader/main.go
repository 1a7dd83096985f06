// The loader rebuilds the symptom-disease catalog from the Kaggle dataset
// CSVs, reindexes symptom search, and notifies running API instances so they
// drop cached snapshots.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/medassist/symptom-assistant/internal/adapters/database"
	"github.com/medassist/symptom-assistant/internal/adapters/events"
	"github.com/medassist/symptom-assistant/internal/adapters/search"
	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/providers"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/postgres"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/redis"
	"github.com/medassist/symptom-assistant/internal/infrastructure/clients/typesense"
	"github.com/medassist/symptom-assistant/internal/ingest"
	"github.com/medassist/symptom-assistant/pkg/config"
)

const defaultSeverityWeight = 5

func main() {
	var dataDir string
	var skipIndex bool
	flag.StringVar(&dataDir, "data", "data", "directory holding the dataset CSV files")
	flag.BoolVar(&skipIndex, "skip-index", false, "skip Typesense reindexing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	loader := database.NewLoaderAdapter(pgClient)

	if err := loader.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("Schema ready")

	diseases, err := parseDiseaseFile(filepath.Join(dataDir, "DiseaseAndSymptoms.csv"))
	if err != nil {
		log.Fatalf("Failed to parse disease file: %v", err)
	}
	log.Printf("Parsed %d diseases from dataset", len(diseases))

	precautions, err := parsePrecautionFile(filepath.Join(dataDir, "Disease precaution.csv"))
	if err != nil {
		log.Fatalf("Failed to parse precaution file: %v", err)
	}
	log.Printf("Parsed %d precautions from dataset", len(precautions))

	if err := loadCatalog(ctx, loader, diseases, precautions); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	stats, err := loader.Stats(ctx)
	if err != nil {
		log.Fatalf("Failed to read catalog stats: %v", err)
	}
	log.Printf("Catalog loaded: %d symptoms, %d diseases, %d associations, %d recommendations",
		stats.Symptoms, stats.Diseases, stats.Associations, stats.Recommendations)

	if !skipIndex {
		if err := reindexSymptoms(ctx, cfg, pgClient); err != nil {
			log.Printf("Warning: symptom search reindex failed: %v", err)
		}
	}

	publishReload(ctx, cfg, stats)
}

func parseDiseaseFile(path string) ([]*ingest.DiseaseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ParseDiseaseSymptoms(f)
}

func parsePrecautionFile(path string) ([]*ingest.PrecautionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ParsePrecautions(f)
}

func loadCatalog(ctx context.Context, loader *database.LoaderAdapter, diseases []*ingest.DiseaseRecord, precautions []*ingest.PrecautionRecord) error {
	if err := loader.UpsertSymptoms(ctx, ingest.UniqueSymptoms(diseases), defaultSeverityWeight); err != nil {
		return err
	}

	symptomIDs, err := loader.SymptomIDsByName(ctx)
	if err != nil {
		return err
	}

	diseaseIDs := map[string]int{}
	for _, disease := range diseases {
		id, err := loader.UpsertDisease(ctx, disease.Name)
		if err != nil {
			return err
		}
		diseaseIDs[strings.ToLower(disease.Name)] = id

		for _, symptom := range disease.Symptoms {
			symptomID, ok := symptomIDs[symptom]
			if !ok {
				continue
			}
			if err := loader.LinkDiseaseSymptom(ctx, id, symptomID, 1.0); err != nil {
				return err
			}
		}
	}

	// Group precautions per disease so each disease gets one replace
	grouped := map[int][]*ingest.PrecautionRecord{}
	for _, p := range precautions {
		id, ok := diseaseIDs[strings.ToLower(strings.Join(strings.Fields(p.Disease), " "))]
		if !ok {
			log.Printf("Warning: precaution references unknown disease %q", p.Disease)
			continue
		}
		grouped[id] = append(grouped[id], p)
	}

	for diseaseID, recs := range grouped {
		texts := make([]string, len(recs))
		orders := make([]int, len(recs))
		for i, rec := range recs {
			texts[i] = rec.Text
			orders[i] = rec.Order
		}
		if err := loader.ReplaceRecommendations(ctx, diseaseID, texts, orders); err != nil {
			return err
		}
	}

	return nil
}

func reindexSymptoms(ctx context.Context, cfg *config.Config, pgClient *postgres.Client) error {
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	symptoms, err := database.NewSymptomAdapter(pgClient).List(ctx)
	if err != nil {
		return err
	}

	if err := adapter.IndexSymptoms(ctx, symptoms); err != nil {
		return err
	}

	log.Printf("Indexed %d symptoms into Typesense", len(symptoms))
	return nil
}

func publishReload(ctx context.Context, cfg *config.Config, stats *database.CatalogStats) {
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: reload event not published (Redis unavailable): %v", err)
		return
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	event := &entities.CatalogEvent{
		Type:      entities.CatalogEventReloaded,
		Source:    "loader",
		Symptoms:  stats.Symptoms,
		Diseases:  stats.Diseases,
		Timestamp: time.Now().UTC(),
	}
	if err := eventBus.Publish(ctx, providers.EventChannelCatalog, event); err != nil {
		log.Printf("Warning: failed to publish reload event: %v", err)
		return
	}
	log.Println("Published catalog reload event")
}
