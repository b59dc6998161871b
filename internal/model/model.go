// Package model defines the data structures used throughout the application.
//
// Every entity has an integer surrogate key generated by the store on insert.
// UserName on questions, answers and comments is a copy of the author's name
// taken at creation time.
package model

import "time"

// User is a registered forum user. Name is unique and case-sensitive.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Question is a top-level post. It owns answers and directly attached comments.
type Question struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Score     int       `json:"score"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
}

// QuestionSummary is a question as it appears in listings.
type QuestionSummary struct {
	Question
	AnswerCount int `json:"answer_count"`
}

// QuestionDetail is a single question with its direct comments.
type QuestionDetail struct {
	Question
	AnswerCount int       `json:"answer_count"`
	Comments    []Comment `json:"comments"`
}

// Answer belongs to exactly one question.
//
// Accepted is a plain flag: nothing prevents two accepted answers on the same
// question.
type Answer struct {
	ID               int64     `json:"id"`
	Body             string    `json:"body"`
	CreatedAt        time.Time `json:"created_at"`
	Score            int       `json:"score"`
	UserID           int64     `json:"user_id"`
	UserName         string    `json:"user_name"`
	ParentQuestionID int64     `json:"parent_question_id"`
	Accepted         bool      `json:"accepted"`
}

// AnswerWithComments is an answer listed under its question.
type AnswerWithComments struct {
	Answer
	Comments []Comment `json:"comments"`
}

// UserAnswer is an answer listed under its author, with the question title.
type UserAnswer struct {
	Answer
	QuestionTitle string `json:"question_title"`
}

// Comment is attached to exactly one question or one answer.
type Comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Parent    ParentRef `json:"parent"`
}

// UserComment is a comment listed under its author, with the title of the
// question it ultimately hangs off.
type UserComment struct {
	Comment
	ParentTitle string `json:"parent_title"`
}
