// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了各種中間件函數，用於在 HTTP 請求處理過程中執行額外的操作。
// 目前提供跨來源資源共享（CORS）的處理，讓瀏覽器端的客戶端可以跨域存取 API。
package middleware
