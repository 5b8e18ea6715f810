package detector

import (
	"context"
	"image"
	"os"
	"sync"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

// Strategy is a face detector that identifies itself so the fallback
// coordinator can track which backend resolved a frame.
type Strategy interface {
	types.FaceDetector
	Name() string
}

type StrategyStats struct {
	Attempts  uint64 `json:"attempts"`
	Successes uint64 `json:"successes"`
}

// DetectionService tries its strategies in registration order and returns
// the first non-empty outcome. A strategy that errors or finds nothing hands
// the frame to the next one; callers never learn which backend answered.
type DetectionService struct {
	strategies []Strategy

	mutex sync.RWMutex
	stats map[string]*StrategyStats
}

func NewDetectionService(strategies ...Strategy) *DetectionService {
	stats := make(map[string]*StrategyStats)
	for _, strategy := range strategies {
		stats[strategy.Name()] = &StrategyStats{}
	}
	return &DetectionService{
		strategies: strategies,
		stats:      stats,
	}
}

func (service *DetectionService) DetectFaces(ctx context.Context, img image.Image) (types.DetectionOutcome, error) {
	var lastErr error
	for _, strategy := range service.strategies {
		outcome, err := strategy.DetectFaces(ctx, img)
		if err != nil {
			service.record(strategy.Name(), false)
			logger.Warning("detection strategy failed. falling back", logger.LoggerOptions{
				Key:  "strategy",
				Data: strategy.Name(),
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			lastErr = err
			continue
		}
		if !outcome.Detected || len(outcome.Regions) == 0 {
			service.record(strategy.Name(), false)
			continue
		}
		service.record(strategy.Name(), true)
		return outcome, nil
	}

	if lastErr != nil {
		return types.DetectionOutcome{}, lastErr
	}
	return types.DetectionOutcome{}, nil
}

func (service *DetectionService) record(name string, success bool) {
	service.mutex.Lock()
	defer service.mutex.Unlock()
	entry := service.stats[name]
	if entry == nil {
		entry = &StrategyStats{}
		service.stats[name] = entry
	}
	entry.Attempts++
	if success {
		entry.Successes++
	}
}

// Stats returns a copy of the per-strategy counters for health reporting.
func (service *DetectionService) Stats() map[string]StrategyStats {
	service.mutex.RLock()
	defer service.mutex.RUnlock()
	snapshot := make(map[string]StrategyStats, len(service.stats))
	for name, entry := range service.stats {
		snapshot[name] = *entry
	}
	return snapshot
}

var FaceDetectionService *DetectionService
var LandmarkService types.LandmarkExtractor

// InitialiseDetectionService wires the sidecar-backed strategies. The deep
// detector leads and the cascade detector picks up frames it misses or when
// the first request fails outright.
func InitialiseDetectionService() {
	visionNetwork := &network.NetworkController{
		BaseUrl: os.Getenv("VERIFACE_VISION_BASE_URL"),
	}
	FaceDetectionService = NewDetectionService(
		&VisionFaceDetector{Model: "retinaface", Network: visionNetwork},
		&VisionFaceDetector{Model: "haar", Network: visionNetwork},
	)
	LandmarkService = &VisionLandmarkExtractor{
		Network: visionNetwork,
	}
}
