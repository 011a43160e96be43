package extract

import "jobx-backend/internal/shared/apperr"

var (
	ErrNoText = apperr.Extraction(
		"no_text_found",
		"Could not extract text from PDF",
		"upload a PDF with selectable text or a clearer scan",
	)
	ErrRendererMissing = apperr.Extraction(
		"pdf_renderer_missing",
		"PDF page renderer is not installed",
		"install poppler-utils (pdftoppm) or set PDFTOPPM_PATH",
	)
	ErrOCREngineMissing = apperr.Extraction(
		"ocr_engine_missing",
		"OCR engine is not installed",
		"install tesseract-ocr or set TESSERACT_PATH",
	)
)
