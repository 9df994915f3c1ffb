package system_healthcheck

type HealthcheckResponseDTO struct {
	Status string        `json:"status"`
	Host   *HostStatsDTO `json:"host,omitempty"`
}

type HostStatsDTO struct {
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
	DiskFreeBytes     uint64  `json:"diskFreeBytes"`
}
