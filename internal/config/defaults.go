package config

import "time"

// Defaults returns the built-in configuration. Every other source is merged
// on top of it.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Source:      Endpoint{RequestTimeout: Duration(time.Minute)},
		Destination: Endpoint{RequestTimeout: Duration(time.Minute)},
		Index: Index{
			Search:    Endpoint{RequestTimeout: Duration(time.Minute)},
			Collector: Endpoint{RequestTimeout: Duration(30 * time.Second), TokenScheme: "Splunk"},
			Names: IndexNames{
				Series:     "dicom_series",
				Studies:    "dicom_studies",
				Dose:       "dose_reports",
				Dimensions: "patient_dims",
			},
		},
		Jobs: Jobs{
			PollInterval:  Duration(time.Second),
			MaxWait:       Duration(10 * time.Minute),
			PageSize:      50000,
			ProgressEvery: 5,
		},
		Transforms: Transforms{
			KeepFields: []string{"StudyDescription", "SeriesDescription", "ProtocolName", "BodyPartExamined", "Modality"},
			DoseFields: []string{
				"X-Ray Radiation Dose Report/CT Acquisition/CT Dose/Mean CTDIvol",
				"X-Ray Radiation Dose Report/CT Acquisition/CT Dose/DLP",
			},
			TimeZone: "UTC",
		},
		Workflows: Workflows{
			DoseSeriesNumbers: []string{"997", "502"},
		},
		Server: Server{ShutdownTimeout: Duration(10 * time.Second)},
		Workers: Workers{
			SyncInterval: Duration(5 * time.Minute),
			Workflows:    []string{"series-sync", "dose-reports"},
		},
		Log: Log{Level: "debug"},
	}
}
