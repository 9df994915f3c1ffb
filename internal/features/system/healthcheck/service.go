package system_healthcheck

import (
	"context"
	"log/slog"

	"taskboard/internal/downdetect"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckService struct {
	downdetectService *downdetect.DowndetectService
	diskPath          string
	logger            *slog.Logger
}

func NewHealthcheckService(
	downdetectService *downdetect.DowndetectService,
	diskPath string,
	logger *slog.Logger,
) *HealthcheckService {
	return &HealthcheckService{
		downdetectService: downdetectService,
		diskPath:          diskPath,
		logger:            logger,
	}
}

func (s *HealthcheckService) IsHealthy(ctx context.Context) error {
	return s.downdetectService.IsAvailable(ctx)
}

// HostStats is best effort: nil when the host cannot be inspected.
func (s *HealthcheckService) HostStats(ctx context.Context) *HostStatsDTO {
	memory, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		s.logger.Warn("Failed to read memory stats", "error", err)
		return nil
	}

	usage, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		s.logger.Warn("Failed to read disk stats", "path", s.diskPath, "error", err)
		return nil
	}

	return &HostStatsDTO{
		MemoryUsedPercent: memory.UsedPercent,
		DiskUsedPercent:   usage.UsedPercent,
		DiskFreeBytes:     usage.Free,
	}
}
