// Package report binds named export presets to column schemas and
// entity-specific projections consumed by the tabular codec.
package report

import (
	"errors"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/pkg/tabular"
)

// Kind names a registered export template.
type Kind string

const (
	KindQuestions          Kind = "questions"
	KindSeries             Kind = "series"
	KindExamResults        Kind = "examResults"
	KindSubjectPerformance Kind = "subjectPerformance"
)

// ErrUnknownKind indicates an unregistered report id.
var ErrUnknownKind = errors.New("unsupported report kind")

// ParseKind validates a raw report id.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindQuestions, KindSeries, KindExamResults, KindSubjectPerformance:
		return Kind(raw), nil
	default:
		return "", ErrUnknownKind
	}
}

// Request is one tagged report variant carrying its own typed input. Each
// variant fixes the document title, column schema and row projection.
type Request interface {
	Kind() Kind
	Options() tabular.ExportOptions
}

// FilterColumns keeps only the columns whose keys appear in the selection,
// preserving the template's relative order. An empty selection keeps the
// full schema.
func FilterColumns(opts tabular.ExportOptions, keys []string) tabular.ExportOptions {
	if len(keys) == 0 {
		return opts
	}

	wanted := make(map[string]bool, len(keys))
	for _, key := range keys {
		wanted[key] = true
	}

	filtered := make([]tabular.Column, 0, len(opts.Columns))
	for _, col := range opts.Columns {
		if wanted[col.Key] {
			filtered = append(filtered, col)
		}
	}
	opts.Columns = filtered

	return opts
}

// QuestionsRequest exports the question bank.
type QuestionsRequest struct {
	Questions []models.Question
}

// Kind implements Request.
func (QuestionsRequest) Kind() Kind { return KindQuestions }

// Options implements Request.
func (r QuestionsRequest) Options() tabular.ExportOptions {
	rows := make([]map[string]any, 0, len(r.Questions))
	for _, q := range r.Questions {
		rows = append(rows, map[string]any{
			"question":       q.Text,
			"subject":        q.Subject,
			"grade":          q.Grade,
			"difficulty":     difficultyLabel(q.Difficulty),
			"question_type":  typeLabel(q.Type),
			"correct_answer": correctAnswerText(q),
			"weight":         q.EffectiveWeight(),
			"usage_count":    q.UsageCount,
			"status":         activeLabel(q.IsActive),
			"created_at":     q.CreatedAt,
		})
	}

	return tabular.ExportOptions{
		Title:    "Banco de Questões",
		Subtitle: "Questões cadastradas",
		Columns: []tabular.Column{
			{Header: "Questão", Key: "question", Width: 60, Type: tabular.TypeText},
			{Header: "Matéria", Key: "subject", Width: 18, Type: tabular.TypeText},
			{Header: "Série", Key: "grade", Width: 12, Type: tabular.TypeText},
			{Header: "Dificuldade", Key: "difficulty", Width: 14, Type: tabular.TypeText},
			{Header: "Tipo", Key: "question_type", Width: 18, Type: tabular.TypeText},
			{Header: "Resposta Correta", Key: "correct_answer", Width: 30, Type: tabular.TypeText},
			{Header: "Peso", Key: "weight", Width: 10, Type: tabular.TypeNumber, Decimals: 1},
			{Header: "Utilizações", Key: "usage_count", Width: 12, Type: tabular.TypeNumber},
			{Header: "Status", Key: "status", Width: 10, Type: tabular.TypeText},
			{Header: "Criada em", Key: "created_at", Width: 14, Type: tabular.TypeDate},
		},
		Data:             rows,
		IncludeTimestamp: true,
	}
}

// SeriesRequest exports the registered grade-level series.
type SeriesRequest struct {
	Series []models.Series
}

// Kind implements Request.
func (SeriesRequest) Kind() Kind { return KindSeries }

// Options implements Request.
func (r SeriesRequest) Options() tabular.ExportOptions {
	rows := make([]map[string]any, 0, len(r.Series))
	for _, s := range r.Series {
		rows = append(rows, map[string]any{
			"name":           s.Name,
			"level":          s.Level,
			"shift":          s.Shift,
			"year":           s.Year,
			"students_count": s.StudentsCount,
			"status":         activeLabel(s.IsActive),
			"created_at":     s.CreatedAt,
		})
	}

	return tabular.ExportOptions{
		Title: "Séries",
		Columns: []tabular.Column{
			{Header: "Nome", Key: "name", Width: 24, Type: tabular.TypeText},
			{Header: "Nível", Key: "level", Width: 10, Type: tabular.TypeNumber},
			{Header: "Turno", Key: "shift", Width: 12, Type: tabular.TypeText},
			{Header: "Ano", Key: "year", Width: 10, Type: tabular.TypeNumber},
			{Header: "Alunos", Key: "students_count", Width: 10, Type: tabular.TypeNumber},
			{Header: "Status", Key: "status", Width: 10, Type: tabular.TypeText},
			{Header: "Criada em", Key: "created_at", Width: 14, Type: tabular.TypeDate},
		},
		Data:             rows,
		IncludeTimestamp: true,
	}
}

// ExamResultsRequest exports scored submissions.
type ExamResultsRequest struct {
	Submissions []models.Submission
}

// Kind implements Request.
func (ExamResultsRequest) Kind() Kind { return KindExamResults }

// Options implements Request.
func (r ExamResultsRequest) Options() tabular.ExportOptions {
	rows := make([]map[string]any, 0, len(r.Submissions))
	for _, s := range r.Submissions {
		rows = append(rows, map[string]any{
			"student":         s.StudentName,
			"exam":            s.ExamTitle,
			"score":           s.Score,
			"total_weight":    s.TotalWeight,
			"total_questions": s.TotalQuestions,
			"percentage":      float64(s.Percentage) / 100,
			"grading_status":  gradingStatusLabel(s.GradingStatus),
			"submitted_at":    s.SubmittedAt,
		})
	}

	return tabular.ExportOptions{
		Title:    "Resultados de Provas",
		Subtitle: "Notas por aluno",
		Columns: []tabular.Column{
			{Header: "Aluno", Key: "student", Width: 28, Type: tabular.TypeText},
			{Header: "Prova", Key: "exam", Width: 32, Type: tabular.TypeText},
			{Header: "Pontuação", Key: "score", Width: 12, Type: tabular.TypeNumber, Decimals: 1},
			{Header: "Peso Total", Key: "total_weight", Width: 12, Type: tabular.TypeNumber, Decimals: 1},
			{Header: "Questões", Key: "total_questions", Width: 10, Type: tabular.TypeNumber},
			{Header: "Percentual", Key: "percentage", Width: 12, Type: tabular.TypePercentage},
			{Header: "Situação", Key: "grading_status", Width: 18, Type: tabular.TypeText},
			{Header: "Enviado em", Key: "submitted_at", Width: 14, Type: tabular.TypeDate},
		},
		Data:             rows,
		IncludeStats:     true,
		IncludeTimestamp: true,
	}
}

// SubjectAccuracy is one aggregated row of the subject performance report.
type SubjectAccuracy struct {
	Subject  string
	Answered int
	Correct  int
}

// SubjectPerformanceRequest exports per-subject accuracy across submissions.
type SubjectPerformanceRequest struct {
	Subjects []SubjectAccuracy
}

// Kind implements Request.
func (SubjectPerformanceRequest) Kind() Kind { return KindSubjectPerformance }

// Options implements Request.
func (r SubjectPerformanceRequest) Options() tabular.ExportOptions {
	rows := make([]map[string]any, 0, len(r.Subjects))
	for _, subject := range r.Subjects {
		accuracy := 0.0
		if subject.Answered > 0 {
			accuracy = float64(subject.Correct) / float64(subject.Answered)
		}
		rows = append(rows, map[string]any{
			"subject":  subject.Subject,
			"answered": subject.Answered,
			"correct":  subject.Correct,
			"accuracy": accuracy,
		})
	}

	return tabular.ExportOptions{
		Title:    "Desempenho por Matéria",
		Subtitle: "Acertos em questões objetivas",
		Columns: []tabular.Column{
			{Header: "Matéria", Key: "subject", Width: 24, Type: tabular.TypeText},
			{Header: "Respostas", Key: "answered", Width: 12, Type: tabular.TypeNumber},
			{Header: "Acertos", Key: "correct", Width: 12, Type: tabular.TypeNumber},
			{Header: "Taxa de Acerto", Key: "accuracy", Width: 16, Type: tabular.TypePercentage},
		},
		Data:             rows,
		IncludeStats:     true,
		IncludeTimestamp: true,
	}
}

func correctAnswerText(q models.Question) string {
	if q.IsEssay() {
		return ""
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

func difficultyLabel(difficulty string) string {
	switch difficulty {
	case models.DifficultyEasy:
		return "Fácil"
	case models.DifficultyMedium:
		return "Média"
	case models.DifficultyHard:
		return "Difícil"
	default:
		return difficulty
	}
}

func typeLabel(questionType string) string {
	switch questionType {
	case models.QuestionTypeMultipleChoice:
		return "Múltipla Escolha"
	case models.QuestionTypeEssay:
		return "Dissertativa"
	default:
		return questionType
	}
}

func activeLabel(isActive bool) string {
	if isActive {
		return "Ativa"
	}
	return "Inativa"
}

func gradingStatusLabel(status string) string {
	switch status {
	case models.GradingStatusGraded:
		return "Corrigida"
	case models.GradingStatusPendingReview:
		return "Aguardando revisão"
	case models.GradingStatusReviewed:
		return "Revisada"
	default:
		return status
	}
}
