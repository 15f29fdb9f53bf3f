package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/report"
	"github.com/provalab/prova-api/internal/repository"
	"github.com/provalab/prova-api/pkg/tabular"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv"
)

// ExportFile is a rendered export document plus its suggested filename.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ReportService resolves report templates and renders export documents.
type ReportService interface {
	Export(ctx context.Context, owner string, kind report.Kind, format string, columns []string) (ExportFile, error)
}

type reportService struct {
	questions   repository.QuestionRepository
	series      repository.SeriesRepository
	exams       repository.ExamRepository
	submissions repository.SubmissionRepository
	logger      zerolog.Logger
}

// NewReportService constructs a ReportService instance.
func NewReportService(questionRepo repository.QuestionRepository, seriesRepo repository.SeriesRepository, examRepo repository.ExamRepository, submissionRepo repository.SubmissionRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		questions:   questionRepo,
		series:      seriesRepo,
		exams:       examRepo,
		submissions: submissionRepo,
		logger:      logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) Export(ctx context.Context, owner string, kind report.Kind, format string, columns []string) (ExportFile, error) {
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatCSV {
		return ExportFile{}, ErrUnsupportedFormat
	}

	request, err := s.buildRequest(ctx, owner, kind)
	if err != nil {
		return ExportFile{}, err
	}

	options := report.FilterColumns(request.Options(), columns)

	var content []byte
	contentType := xlsxContentType
	if format == FormatCSV {
		content, err = tabular.ExportCSV(options)
		contentType = csvContentType
	} else {
		content, err = tabular.ExportXLSX(options)
	}
	if err != nil {
		return ExportFile{}, err
	}

	s.logger.Info().
		Str("report", string(kind)).
		Str("format", format).
		Int("rows", len(options.Data)).
		Msg("report exported")

	return ExportFile{
		FileName:    tabular.Filename(options.Title, format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *reportService) buildRequest(ctx context.Context, owner string, kind report.Kind) (report.Request, error) {
	switch kind {
	case report.KindQuestions:
		questions, err := s.questions.List(ctx, owner)
		if err != nil {
			return nil, err
		}
		return report.QuestionsRequest{Questions: questions}, nil
	case report.KindSeries:
		series, err := s.series.List(ctx, owner)
		if err != nil {
			return nil, err
		}
		return report.SeriesRequest{Series: series}, nil
	case report.KindExamResults:
		submissions, err := s.submissions.List(ctx, owner, repository.SubmissionFilter{})
		if err != nil {
			return nil, err
		}
		return report.ExamResultsRequest{Submissions: submissions}, nil
	case report.KindSubjectPerformance:
		return s.buildSubjectPerformance(ctx, owner)
	default:
		return nil, report.ErrUnknownKind
	}
}

// buildSubjectPerformance joins submission results back to the subjects of
// the exam question snapshots and accumulates per-subject accuracy over
// answered multiple-choice questions.
func (s *reportService) buildSubjectPerformance(ctx context.Context, owner string) (report.Request, error) {
	exams, err := s.exams.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissions.List(ctx, owner, repository.SubmissionFilter{})
	if err != nil {
		return nil, err
	}

	examsByID := make(map[string]models.Exam, len(exams))
	for _, exam := range exams {
		examsByID[exam.ID] = exam
	}

	type tally struct {
		answered int
		correct  int
	}
	tallies := map[string]*tally{}
	var order []string

	for _, submission := range submissions {
		exam, ok := examsByID[submission.ExamID]
		if !ok {
			continue
		}
		for i, result := range submission.Results {
			if result.RequiresManualGrading || i >= len(exam.Questions) {
				continue
			}
			subject := exam.Questions[i].Subject
			if subject == "" {
				continue
			}
			entry, ok := tallies[subject]
			if !ok {
				entry = &tally{}
				tallies[subject] = entry
				order = append(order, subject)
			}
			entry.answered++
			if result.IsCorrect != nil && *result.IsCorrect {
				entry.correct++
			}
		}
	}

	subjects := make([]report.SubjectAccuracy, 0, len(order))
	for _, subject := range order {
		subjects = append(subjects, report.SubjectAccuracy{
			Subject:  subject,
			Answered: tallies[subject].answered,
			Correct:  tallies[subject].correct,
		})
	}

	return report.SubjectPerformanceRequest{Subjects: subjects}, nil
}
