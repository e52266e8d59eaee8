package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexPage 回傳內建的測試頁面，
// 可直接在瀏覽器中建立房間並測試剪貼簿同步
func IndexPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Clipboard Bridge</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; max-width: 720px; }
        textarea {
            width: 100%;
            height: 160px;
            padding: 8px;
            box-sizing: border-box;
        }
        input[type="text"] {
            width: 160px;
            padding: 5px;
            margin-right: 10px;
            text-transform: uppercase;
        }
        button {
            padding: 5px 15px;
            background-color: #007cba;
            color: white;
            border: none;
            cursor: pointer;
        }
        button:hover { background-color: #005a87; }
        .status {
            margin: 10px 0;
            padding: 5px;
            border-radius: 3px;
        }
        .connected { background-color: #d4edda; color: #155724; }
        .disconnected { background-color: #f8d7da; color: #721c24; }
    </style>
</head>
<body>
    <h1>Clipboard Bridge</h1>
    <p>在裝置之間同步剪貼簿：建立或加入一個房間，貼上的內容會即時出現在其他裝置上。</p>
    <div>
        <button onclick="createRoom()">建立房間</button>
        <input type="text" id="roomCode" placeholder="房間代碼" maxlength="6">
        <button onclick="joinRoom()">加入房間</button>
    </div>
    <div id="status" class="status disconnected">未連線</div>
    <textarea id="content" placeholder="在這裡貼上要同步的內容" oninput="scheduleSync()"></textarea>

    <script>
        let ws = null;
        let syncTimer = null;
        let suppress = false;

        function setStatus(text, ok) {
            const el = document.getElementById('status');
            el.textContent = text;
            el.className = 'status ' + (ok ? 'connected' : 'disconnected');
        }

        async function createRoom() {
            const resp = await fetch('/create-room', { method: 'POST' });
            const data = await resp.json();
            document.getElementById('roomCode').value = data.room_code;
            joinRoom();
        }

        function joinRoom() {
            const code = document.getElementById('roomCode').value.trim().toUpperCase();
            if (!code) return;
            if (ws) ws.close();

            const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
            ws = new WebSocket(proto + location.host + '/ws/' + code);

            ws.onopen = () => setStatus('已連線到房間 ' + code, true);
            ws.onclose = (e) => setStatus(e.reason || '連線已中斷', false);
            ws.onmessage = (e) => {
                const msg = JSON.parse(e.data);
                if (msg.type === 'sync') {
                    suppress = true;
                    document.getElementById('content').value = msg.content;
                    suppress = false;
                }
            };
        }

        function scheduleSync() {
            if (suppress || !ws || ws.readyState !== WebSocket.OPEN) return;
            clearTimeout(syncTimer);
            syncTimer = setTimeout(() => {
                ws.send(JSON.stringify({
                    type: 'clipboard',
                    content: document.getElementById('content').value
                }));
            }, 300);
        }
    </script>
</body>
</html>
`
