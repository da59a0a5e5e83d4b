package optim

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/born-ml/neuraltrainer/internal/nn"
	"gonum.org/v1/gonum/stat"
)

// ProgressReporter receives the average loss after every epoch.
//
// Implementations must not block and must not panic under normal use.
type ProgressReporter interface {
	ReportProgress(epoch int, averageLoss float64)
}

// NullReporter discards all progress.
type NullReporter struct{}

// ReportProgress does nothing.
func (NullReporter) ReportProgress(int, float64) {}

// StatisticsReporter collects one Statistics record per epoch.
//
// Example:
//
//	stats := optim.NewStatisticsReporter()
//	trainer, _ := optim.NewSGD(optim.SGDConfig{LR: 0.5}, nil, stats)
//	_ = trainer.Train(network, examples, 1000)
//
//	last, _ := stats.Last()
//	fmt.Printf("final loss %.4f, trend %.2e\n", last.AverageLoss, stats.LossSlope())
type StatisticsReporter struct {
	stats []Statistics
	now   func() time.Time
}

// NewStatisticsReporter creates an empty reporter stamped with UTC wall time.
func NewStatisticsReporter() *StatisticsReporter {
	return &StatisticsReporter{now: func() time.Time { return time.Now().UTC() }}
}

// NewStatisticsReporterWithClock creates a reporter using now for timestamps.
func NewStatisticsReporterWithClock(now func() time.Time) *StatisticsReporter {
	return &StatisticsReporter{now: now}
}

// ReportProgress appends a record.
func (r *StatisticsReporter) ReportProgress(epoch int, averageLoss float64) {
	r.stats = append(r.stats, Statistics{
		Epoch:       epoch,
		AverageLoss: averageLoss,
		Timestamp:   r.now(),
	})
}

// Statistics returns a copy of all records in report order.
func (r *StatisticsReporter) Statistics() []Statistics {
	return append([]Statistics(nil), r.stats...)
}

// Len returns the number of records.
func (r *StatisticsReporter) Len() int {
	return len(r.stats)
}

// Last returns the most recent record.
func (r *StatisticsReporter) Last() (Statistics, bool) {
	if len(r.stats) == 0 {
		return Statistics{}, false
	}
	return r.stats[len(r.stats)-1], true
}

// MeanLoss returns the mean average loss of records [from, to).
// Bounds are clamped to the available records; an empty range yields NaN.
func (r *StatisticsReporter) MeanLoss(from, to int) float64 {
	from = max(from, 0)
	to = min(to, len(r.stats))
	if from >= to {
		return math.NaN()
	}

	losses := make([]float64, 0, to-from)
	for _, s := range r.stats[from:to] {
		losses = append(losses, s.AverageLoss)
	}
	return stat.Mean(losses, nil)
}

// LossSlope returns the least-squares slope of average loss against epoch.
// A negative slope means the loss trends downward. Fewer than two records
// yield 0.
func (r *StatisticsReporter) LossSlope() float64 {
	if len(r.stats) < 2 {
		return 0
	}

	epochs := make([]float64, len(r.stats))
	losses := make([]float64, len(r.stats))
	for i, s := range r.stats {
		epochs[i] = float64(s.Epoch)
		losses[i] = s.AverageLoss
	}

	_, slope := stat.LinearRegression(epochs, losses, nil, false)
	return slope
}

// LogReporter logs progress with log/slog every interval epochs.
type LogReporter struct {
	logger   *slog.Logger
	interval int
}

// NewLogReporter creates a reporter that logs epochs divisible by interval.
// A nil logger means slog.Default().
func NewLogReporter(logger *slog.Logger, interval int) (*LogReporter, error) {
	if interval <= 0 {
		return nil, nn.NewArgumentError("reportInterval", nn.ErrOutOfRange, "report interval must be positive, got %d", interval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger, interval: interval}, nil
}

// ReportProgress logs at Info when epoch is a multiple of the interval and
// at Debug otherwise.
func (r *LogReporter) ReportProgress(epoch int, averageLoss float64) {
	level := slog.LevelDebug
	if epoch%r.interval == 0 {
		level = slog.LevelInfo
	}
	r.logger.Log(context.Background(), level, "epoch finished", "epoch", epoch, "loss", averageLoss)
}

// MultiReporter forwards progress to every reporter in order.
type MultiReporter []ProgressReporter

// ReportProgress forwards to each non-nil reporter.
func (m MultiReporter) ReportProgress(epoch int, averageLoss float64) {
	for _, r := range m {
		if r != nil {
			r.ReportProgress(epoch, averageLoss)
		}
	}
}
