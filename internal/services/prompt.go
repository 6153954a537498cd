package services

import (
	"fmt"
	"unicode/utf8"
)

type PromptBuilder struct {
	maxChars int
}

// NewPromptBuilder caps embedded resume text at maxChars runes; zero means no cap.
func NewPromptBuilder(maxChars int) *PromptBuilder {
	return &PromptBuilder{maxChars: maxChars}
}

// BuildCandidateExtractionPrompt creates the prompt that asks the model for a
// JSON array of candidates.
func (pb *PromptBuilder) BuildCandidateExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert at extracting candidate information from resumes.
Below is text extracted from a resume. Your task is to extract the details and present them in a structured JSON array.
Each element in the array should represent a single candidate.

Here are the required fields:
1. first_name: The candidate's first name. Usually found at/near the beginning of the resume, as a header.
2. last_name: The candidate's last name. Usually found at/near the beginning of the resume, as part of the header.
3. address: Where they live. Try and look for a Canadian or American address (e.g., 640 Pepperloaf Crescent, Winnipeg, MB R3R 1E8).
4. date_of_birth: The candidate's date of birth (e.g., 'Jan 01, 1990') written in YYYY-MM-DD format. If not available, use an empty string.
5. diploma: What they studied for their diploma, if applicable (e.g., 'Diploma in Data Science and Machine Learning').
6. diploma_school: The school they studied in for their diploma (e.g., 'Red River College'). Usually found next to the diploma course.
7. degree: The highest degree or primary field of study mentioned (e.g., 'Bsc. Computer Science', 'BA Philosophy').
8. degree_school: The school they studied in for their degree (e.g., 'University of Nairobi'). Usually found next to the degree course.

Please ensure the output is a single JSON array of objects, with no additional text or formatting outside of the JSON.
If the resume contains information for only one person, the array should contain a single object.

Resume Content:
%s`, pb.truncate(resumeText))
}

func (pb *PromptBuilder) truncate(text string) string {
	if pb.maxChars <= 0 || utf8.RuneCountInString(text) <= pb.maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:pb.maxChars])
}

// BuildTranscriptionPrompt asks for a faithful markdown rendering of a document image.
func (pb *PromptBuilder) BuildTranscriptionPrompt() string {
	return `Transcribe this document image into markdown.
Keep the original wording, headings and list structure. Do not summarize, translate or add commentary.
If the image contains no readable text, return an empty response.`
}
