package models

type ConfigStruct struct {
	Timezone                  string   `json:"timezone"`
	CoverrPort                int      `json:"coverr_port"`
	CoverrName                string   `json:"coverr_name"`
	CoverrExternalURL         string   `json:"coverr_external_url"`
	CoverrVersion             string   `json:"coverr_version"`
	CoverrEnvironment         string   `json:"coverr_environment"`
	CoverrLogLevel            string   `json:"coverr_log_level"`
	CoverrLibraries           []string `json:"coverr_libraries"`
	CoverrProcessOnStartUp    bool     `json:"coverr_process_on_start_up"`
	CoverrProcessCronSchedule string   `json:"coverr_process_cron_schedule"`
	CoverrMaxArtworkSize      int      `json:"coverr_max_artwork_size"`
	CoverrFetchResolution     int      `json:"coverr_fetch_resolution"`
	CoverrSearchLimit         int      `json:"coverr_search_limit"`
}
