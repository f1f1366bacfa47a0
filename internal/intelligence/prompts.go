package intelligence

import "strings"

const analysisPromptTemplate = `You are a timesheet data analyst.

**Input:** Raw CSV content representing work entries.
CSV:
%CSV%

**Task:**
1.  **Columns:** List all unique column headers.
2.  **Time_Column:** Among all column headers, identify the column that represents time spent on the task.
3.  **Date_Column:** Among all column headers, identify the column that represents the date.
4.  **Summary:** Analyze the timesheet data to identify the major, distinct work activities. For each major activity, summarize its overall time commitment. Find its subactivities. Each subactivity of an activity must be summarized as points.

**Output as JSON with keys Columns, Time_Column, Date_Column and Activities_Summary:**
  1. "Columns": ["Column Name 1", "Column Name 2"] obtained in Task 1
  2. "Time_Column": Column obtained in Task 2
  3. "Date_Column": Column obtained in Task 3
  4. "Activities_Summary": Summary (as a string) obtained in Task 4 as given below.
      1. Activity1 (bold letters): Time Spent - first major point
          - subtask1 in concise form as a point below the Activity1
          - subtask2 in concise form as a point below the subtask1
      2. Activity2 (bold letters): Time Spent - second major point
          - subtask1 in concise form as a point below the Activity2
          - subtask2 in concise form as a point below the subtask1`

// BuildAnalysisPrompt embeds the serialized CSV verbatim in the analysis
// instruction template. Pure string formatting; it cannot fail.
func BuildAnalysisPrompt(csvContent string) string {
	return strings.Replace(analysisPromptTemplate, "%CSV%", csvContent, 1)
}
