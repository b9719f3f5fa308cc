// Package seed loads a sample portfolio dataset for local development.
package seed

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year, month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// Run populates the database with sample content. It is a no-op when a
// profile row already exists.
func Run(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&model.PersonalInfo{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("sample data already present, skipping seed")
		return nil
	}

	info := model.PersonalInfo{
		Name:     "Jamuna Yadav",
		Title:    "Senior Data Engineer",
		Email:    "jamuna.yadav@example.com",
		Phone:    "+1 (555) 123-4567",
		Location: "San Francisco, CA",
		LinkedIn: "https://linkedin.com/in/jamunayadav",
		GitHub:   "https://github.com/jamunayadav",
		Website:  "https://jamunayadav.dev",
		AboutMe:  "Data engineer with over 5 years of experience building scalable data pipelines, ETL processes, and data warehousing solutions across e-commerce, healthcare, and fintech.",
		Summary:  "Passionate Data Engineer transforming raw data into actionable insights.",
	}
	if err := db.Create(&info).Error; err != nil {
		return fmt.Errorf("seed personal info: %w", err)
	}

	skills := []model.Skill{
		{Name: "Python", Category: model.CategoryProgramming, Proficiency: 95, Icon: "fab fa-python"},
		{Name: "SQL", Category: model.CategoryProgramming, Proficiency: 90, Icon: "fas fa-database"},
		{Name: "Scala", Category: model.CategoryProgramming, Proficiency: 85, Icon: "fas fa-code"},
		{Name: "PostgreSQL", Category: model.CategoryDatabase, Proficiency: 90, Icon: "fas fa-database"},
		{Name: "Redis", Category: model.CategoryDatabase, Proficiency: 80, Icon: "fas fa-memory"},
		{Name: "Snowflake", Category: model.CategoryDatabase, Proficiency: 88, Icon: "fas fa-snowflake"},
		{Name: "AWS", Category: model.CategoryCloud, Proficiency: 92, Icon: "fab fa-aws"},
		{Name: "GCP", Category: model.CategoryCloud, Proficiency: 80, Icon: "fab fa-google"},
		{Name: "Apache Spark", Category: model.CategoryTools, Proficiency: 90, Icon: "fas fa-fire"},
		{Name: "Apache Kafka", Category: model.CategoryTools, Proficiency: 85, Icon: "fas fa-stream"},
		{Name: "Docker", Category: model.CategoryTools, Proficiency: 88, Icon: "fab fa-docker"},
		{Name: "Airflow", Category: model.CategoryTools, Proficiency: 90, Icon: "fas fa-wind"},
		{Name: "Problem Solving", Category: model.CategorySoft, Proficiency: 95, Icon: "fas fa-lightbulb"},
		{Name: "Communication", Category: model.CategorySoft, Proficiency: 90, Icon: "fas fa-comments"},
	}
	if err := db.Create(&skills).Error; err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	byName := make(map[string]model.Skill, len(skills))
	for _, s := range skills {
		byName[s.Name] = s
	}
	pick := func(names ...string) []model.Skill {
		out := make([]model.Skill, 0, len(names))
		for _, n := range names {
			out = append(out, byName[n])
		}
		return out
	}

	projects := []model.Project{
		{
			Title:            "Real-time ETL Pipeline for E-commerce",
			ShortDescription: "Real-time data pipeline processing 1M+ events daily.",
			Description:      "Designed and implemented a real-time ETL pipeline processing over 1 million events daily, using Kafka for streaming, Spark for processing, and Snowflake for warehousing.",
			Featured:         true,
			GithubURL:        "https://github.com/jamunayadav/ecommerce-etl",
			LiveURL:          "https://demo.jamunayadav.dev/ecommerce-etl",
			Technologies:     pick("Python", "Apache Kafka", "Apache Spark", "Snowflake", "Docker"),
		},
		{
			Title:            "Healthcare Data Analytics Platform",
			ShortDescription: "HIPAA-compliant analytics platform for healthcare data.",
			Description:      "Built a healthcare analytics platform with compliant data ingestion, transformation, and patient monitoring dashboards.",
			Featured:         true,
			GithubURL:        "https://github.com/jamunayadav/healthcare-analytics",
			Technologies:     pick("Python", "PostgreSQL", "Airflow", "AWS"),
		},
		{
			Title:            "Machine Learning Pipeline for Fraud Detection",
			ShortDescription: "ML pipeline for real-time fraud scoring of transactions.",
			Description:      "Developed a fraud detection pipeline scoring millions of financial transactions daily with automated model training and deployment.",
			Featured:         true,
			GithubURL:        "https://github.com/jamunayadav/fraud-detection-ml",
			Technologies:     pick("Python", "Apache Spark", "Redis"),
		},
		{
			Title:            "Data Lake Architecture for IoT",
			ShortDescription: "Scalable data lake for IoT sensor data.",
			Description:      "Architected a multi-zone data lake ingesting and curating sensor data from millions of devices.",
			GithubURL:        "https://github.com/jamunayadav/iot-data-lake",
			Technologies:     pick("Python", "Apache Kafka", "Apache Spark", "AWS"),
		},
		{
			Title:            "Customer 360 Data Platform",
			ShortDescription: "Unified customer data platform integrating 20+ sources.",
			Description:      "Integrated customer data from CRM, marketing, analytics, and social sources into unified real-time profiles.",
			GithubURL:        "https://github.com/jamunayadav/customer360",
			Technologies:     pick("Python", "PostgreSQL", "Airflow", "Redis"),
		},
	}
	if err := db.Create(&projects).Error; err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}

	experiences := []model.Experience{
		{
			Company:      "TechCorp Inc.",
			Position:     "Senior Data Engineer",
			Location:     "San Francisco, CA",
			StartDate:    date(2022, 3, 1),
			Current:      true,
			Description:  "Leading data platform work for analytics and ML teams.",
			Achievements: "Cut pipeline latency by 60%; mentored four engineers.",
			Technologies: pick("Python", "Apache Spark", "AWS", "Airflow"),
		},
		{
			Company:      "DataWorks",
			Position:     "Data Engineer",
			Location:     "Remote",
			StartDate:    date(2019, 6, 1),
			EndDate:      datePtr(2022, 2, 28),
			Description:  "Built batch and streaming ETL for retail clients.",
			Technologies: pick("Python", "SQL", "Apache Kafka"),
		},
	}
	if err := db.Create(&experiences).Error; err != nil {
		return fmt.Errorf("seed experiences: %w", err)
	}

	gpa := 3.85
	education := []model.Education{
		{
			Institution:  "University of California, Berkeley",
			Degree:       "Master of Science",
			FieldOfStudy: "Computer Science",
			StartDate:    date(2017, 8, 1),
			EndDate:      datePtr(2019, 5, 15),
			GPA:          &gpa,
			Description:  "Focus on distributed systems and databases.",
		},
	}
	if err := db.Create(&education).Error; err != nil {
		return fmt.Errorf("seed education: %w", err)
	}

	certifications := []model.Certification{
		{
			Name:          "AWS Certified Data Analytics - Specialty",
			Issuer:        "Amazon Web Services",
			IssueDate:     date(2023, 4, 10),
			ExpiryDate:    datePtr(2026, 4, 10),
			CredentialID:  "AWS-DAS-2023-0412",
			CredentialURL: "https://aws.amazon.com/verification",
		},
		{
			Name:      "Apache Airflow Fundamentals",
			Issuer:    "Astronomer",
			IssueDate: date(2022, 9, 1),
		},
	}
	if err := db.Create(&certifications).Error; err != nil {
		return fmt.Errorf("seed certifications: %w", err)
	}

	posts := []model.BlogPost{
		{
			Title:     "Streaming ETL Lessons Learned",
			Slug:      "streaming-etl-lessons-learned",
			Excerpt:   "What a year of production Kafka pipelines taught me.",
			Content:   "Running streaming ETL in production surfaces failure modes batch jobs never see. This post covers backpressure, exactly-once delivery, and schema evolution.",
			Published: true,
		},
		{
			Title:     "Choosing a Data Warehouse in 2024",
			Slug:      "choosing-a-data-warehouse",
			Excerpt:   "Snowflake, BigQuery, and Redshift compared for mid-size teams.",
			Content:   "A practical comparison of the major cloud warehouses from the perspective of a small data team.",
			Published: true,
		},
		{
			Title:   "Draft: Data Contracts",
			Slug:    "data-contracts",
			Content: "Work in progress on producer/consumer data contracts.",
		},
	}
	if err := db.Create(&posts).Error; err != nil {
		return fmt.Errorf("seed blog posts: %w", err)
	}

	logger.Info("sample data created",
		zap.Int("skills", len(skills)),
		zap.Int("projects", len(projects)),
		zap.Int("posts", len(posts)),
	)
	return nil
}
